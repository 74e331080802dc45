package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/gridiron/core/algo"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// blendPurposes describe what each blend is for.
var blendPurposes = map[schema.BlendMode]string{
	schema.ProjectionBlend: "Expected weekly value, used for the overall ranking",
	schema.FloorBlend:      "Safe weekly output; recency is scaled by confidence",
	schema.CeilingBlend:    "Spike-week potential driven by high-value touches",
}

// getDisplayNameForBlend returns the display name with emoji for a blend.
func getDisplayNameForBlend(mode schema.BlendMode) string {
	switch mode {
	case schema.ProjectionBlend:
		return "🎯 PROJECTION"
	case schema.FloorBlend:
		return "🛡️  FLOOR"
	case schema.CeilingBlend:
		return "🚀 CEILING"
	default:
		return strings.ToUpper(string(mode))
	}
}

// effectiveWeights returns the active weights for mode, falling back to defaults.
func effectiveWeights(mode schema.BlendMode, active map[schema.BlendMode]map[schema.ComponentKey]float64) map[schema.ComponentKey]float64 {
	if w, ok := active[mode]; ok && len(w) > 0 {
		return w
	}
	return schema.GetDefaultWeights(mode)
}

// formatWeights renders weights as a formula in component order.
func formatWeights(weights map[schema.ComponentKey]float64) string {
	var parts []string
	for _, key := range schema.AllComponents {
		if w, ok := weights[key]; ok && w > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", w, key))
		}
	}
	return strings.Join(parts, " + ")
}

// BuildWeightsRenderModel collects everything needed to display the blends.
// Blends without active weights show their defaults.
func BuildWeightsRenderModel(active map[schema.BlendMode]map[schema.ComponentKey]float64, format schema.ScoringFormat) *schema.WeightsRenderModel {
	blends := make([]schema.BlendDefinition, 0, len(schema.AllBlendModes))
	for _, mode := range schema.AllBlendModes {
		weights := effectiveWeights(mode, active)
		blends = append(blends, schema.BlendDefinition{
			Name:    string(mode),
			Purpose: blendPurposes[mode],
			Weights: weights,
			Formula: formatWeights(weights),
		})
	}
	return &schema.WeightsRenderModel{
		Title:  "Gridiron Blend Weights",
		Format: format.String(),
		Blends: blends,
		DepthTable: map[string]float64{
			"starter":  algo.DepthScore(1),
			"backup":   algo.DepthScore(2),
			"third":    algo.DepthScore(3),
			"unlisted": algo.DepthScore(0),
		},
		Notes: []string{
			"Components are percentiles within position mapped to 1-10",
			"Environment = 0.60*depth + 0.40*team wins (8 wins when unknown)",
			"Matchup is a neutral 5.0 baseline",
			"Floor is capped at the ceiling",
		},
	}
}

// WriteWeights displays the blend weights in effect.
func WriteWeights(active map[schema.BlendMode]map[schema.ComponentKey]float64, cfg *contract.Config) error {
	model := BuildWeightsRenderModel(active, cfg.Format)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightsCSV(w, model)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("weights does not support %s output", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightsText(w, model)
		}, "Wrote text")
	}
}

func writeWeightsCSV(w io.Writer, model *schema.WeightsRenderModel) error {
	header := []string{"blend", "purpose"}
	for _, key := range schema.AllComponents {
		header = append(header, string(key))
	}
	header = append(header, "formula")
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, b := range model.Blends {
			record := []string{b.Name, b.Purpose}
			for _, key := range schema.AllComponents {
				record = append(record, fmt.Sprintf("%.2f", b.Weights[key]))
			}
			record = append(record, b.Formula)
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeWeightsText(w io.Writer, model *schema.WeightsRenderModel) error {
	fmt.Fprintf(w, "🧮 %s (%s)\n\n", model.Title, model.Format)
	for _, b := range model.Blends {
		fmt.Fprintf(w, "%s: %s\n", getDisplayNameForBlend(schema.BlendMode(b.Name)), b.Purpose)
		fmt.Fprintf(w, "   %s = %s\n\n", b.Name, b.Formula)
	}
	fmt.Fprintln(w, "Depth chart scores:")
	for _, label := range []string{"starter", "backup", "third", "unlisted"} {
		fmt.Fprintf(w, "   %-9s %.1f\n", label, model.DepthTable[label])
	}
	fmt.Fprintln(w)
	for _, note := range model.Notes {
		if _, err := fmt.Fprintf(w, "• %s\n", note); err != nil {
			return err
		}
	}
	return nil
}
