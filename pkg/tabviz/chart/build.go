package chart

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// Build dispatches to the builder selected by cfg.Kind.
// Builders are pure: the same dataset and config give an equal model.
func Build(ds *dataset.Dataset, cfg Config) (*models.ChartModel, error) {
	switch cfg.Kind {
	case models.KindLine:
		return BuildLine(ds, cfg)
	case models.KindBar:
		return BuildBar(ds, cfg)
	case models.KindTable:
		return BuildTable(ds, cfg)
	case models.KindTree:
		return BuildTree(ds, cfg)
	default:
		return nil, newChartError(string(cfg.Kind), ErrInvalidConfig, "", fmt.Sprintf("unknown chart kind %q", cfg.Kind))
	}
}

// BuildAll builds one chart per config concurrently over the same dataset.
// Results are in config order. The first failure cancels the remaining
// builds and is returned.
func BuildAll(ctx context.Context, ds *dataset.Dataset, cfgs []Config) ([]*models.ChartModel, error) {
	charts := make([]*models.ChartModel, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Build(ds, cfg)
			if err != nil {
				return err
			}
			charts[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}
