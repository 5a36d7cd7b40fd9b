// Package schema infers typed datasets from raw cell grids.
package schema

import (
	"log/slog"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
)

// FillPolicy decides how rows shorter than the widest row are handled.
type FillPolicy string

const (
	// FillPad pads short rows with nulls.
	FillPad FillPolicy = "pad"
	// FillNone rejects grids whose rows differ in length.
	FillNone FillPolicy = "none"
)

// Options configures inference.
type Options struct {
	// Fill is the ragged-row policy. Empty means FillPad.
	Fill FillPolicy
	// Labels replace column names by position. Empty entries keep the inferred name.
	Labels []string
	// Types force column types by column name, skipping inference for them.
	Types map[string]dataset.Type
	// DateLayouts extends the accepted date layouts.
	DateLayouts []string
	// Logger receives debug output. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default inference options.
func DefaultOptions() Options {
	return Options{Fill: FillPad}
}

func (o Options) fillPolicy() FillPolicy {
	if o.Fill == "" {
		return FillPad
	}
	return o.Fill
}

func (o Options) parser() dataset.Parser {
	p := dataset.DefaultParser()
	if len(o.DateLayouts) > 0 {
		p.DateLayouts = append(append([]string(nil), o.DateLayouts...), p.DateLayouts...)
	}
	return p
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
