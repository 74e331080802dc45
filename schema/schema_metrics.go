package schema

// BlendDefinition describes one blended output for display purposes.
type BlendDefinition struct {
	Name    string                   `json:"name"`
	Purpose string                   `json:"purpose"`
	Weights map[ComponentKey]float64 `json:"weights"`
	Formula string                   `json:"formula"`
}

// WeightsRenderModel contains all processed data needed for displaying blend weights.
type WeightsRenderModel struct {
	Title      string             `json:"title"`
	Format     string             `json:"format"`
	Blends     []BlendDefinition  `json:"blends"`
	DepthTable map[string]float64 `json:"depth_table"`
	Notes      []string           `json:"notes"`
}
