// Package tabviz loads tabular files into typed datasets.
package tabviz

import (
	"log/slog"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/reader"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/schema"
)

// Options configures loading.
type Options struct {
	// Reader configures format detection and parsing.
	Reader reader.Options
	// Schema configures type inference.
	Schema schema.Options
	// Logger is passed to both stages unless they set their own.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		Reader: reader.DefaultOptions(),
		Schema: schema.DefaultOptions(),
	}
}

// withLogger propagates Logger to the stage options.
func (o Options) withLogger() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Reader.Logger == nil {
		o.Reader.Logger = o.Logger
	}
	if o.Schema.Logger == nil {
		o.Schema.Logger = o.Logger
	}
	return o
}
