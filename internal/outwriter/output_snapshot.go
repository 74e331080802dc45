package outwriter

import (
	"io"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// WriteSnapshot writes snap as indented JSON regardless of cfg.Output.
func WriteSnapshot(snap *schema.LeagueSnapshot, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, snap)
	}, "Wrote snapshot")
}
