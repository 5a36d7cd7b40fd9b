// Package session holds the dataset of one open document and caches the
// charts built from it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/ukaji3/tabviz-go/pkg/tabviz"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/chart"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// ErrNoDataset is returned when a chart is requested before any load succeeded.
var ErrNoDataset = errors.New("no dataset loaded")

// Result is delivered by LoadAsync.
type Result struct {
	Dataset *dataset.Dataset
	Err     error
}

type cacheKey struct {
	datasetID   string
	fingerprint uint64
}

// Session is safe for concurrent use.
//
// A failed load leaves the previous dataset in place. When loads overlap,
// the most recently started successful load wins.
type Session struct {
	opts   tabviz.Options
	logger *slog.Logger

	mu        sync.Mutex
	ds        *dataset.Dataset
	installed uint64
	started   uint64
	cache     map[cacheKey]*models.ChartModel
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithOptions sets the load options.
func WithOptions(opts tabviz.Options) Option {
	return func(s *Session) {
		s.opts = opts
	}
}

// New returns an empty Session.
func New(opts ...Option) *Session {
	s := &Session{
		opts:   tabviz.DefaultOptions(),
		logger: slog.Default(),
		cache:  make(map[cacheKey]*models.ChartModel),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.opts.Logger == nil {
		s.opts.Logger = s.logger
	}
	return s
}

// Dataset returns the current dataset, or nil before the first successful load.
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds
}

// Load parses data synchronously and installs the result on success.
func (s *Session) Load(data []byte) (*dataset.Dataset, error) {
	seq := s.begin()
	ds, err := tabviz.Load(data, s.opts)
	return s.finish(seq, ds, err)
}

// LoadFile is like Load but reads the file at path.
func (s *Session) LoadFile(path string) (*dataset.Dataset, error) {
	seq := s.begin()
	ds, err := tabviz.LoadFile(path, s.opts)
	return s.finish(seq, ds, err)
}

// LoadAsync parses data on a new goroutine. The channel receives exactly
// one Result and is then closed. Parsing is not interrupted by ctx, but a
// result that arrives after ctx is done is discarded and ctx.Err() is
// delivered instead.
func (s *Session) LoadAsync(ctx context.Context, data []byte) <-chan Result {
	out := make(chan Result, 1)
	seq := s.begin()
	go func() {
		defer close(out)
		ds, err := tabviz.Load(data, s.opts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.logger.Debug("discarding cancelled load", "seq", seq)
			out <- Result{Err: ctxErr}
			return
		}
		ds, err = s.finish(seq, ds, err)
		out <- Result{Dataset: ds, Err: err}
	}()
	return out
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return s.started
}

func (s *Session) finish(seq uint64, ds *dataset.Dataset, err error) (*dataset.Dataset, error) {
	if err != nil {
		s.logger.Warn("load failed, keeping previous dataset", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.installed {
		s.logger.Debug("discarding stale load", "seq", seq, "installed", s.installed)
		return ds, nil
	}
	s.installed = seq
	s.ds = ds
	for key := range s.cache {
		if key.datasetID != ds.ID() {
			delete(s.cache, key)
		}
	}
	return ds, nil
}

// Chart builds the chart for cfg over the current dataset, reusing a
// cached model when the same config was built for the same dataset.
// Returned models are shared and must not be modified.
func (s *Session) Chart(cfg chart.Config) (*models.ChartModel, error) {
	ds := s.Dataset()
	if ds == nil {
		return nil, ErrNoDataset
	}

	key, err := keyFor(ds, cfg)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	m, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		s.logger.Debug("chart cache hit", "kind", string(cfg.Kind), "dataset", ds.ID())
		return m, nil
	}

	m, err = chart.Build(ds, cfg)
	if err != nil {
		return nil, err
	}
	s.store(key, m)
	return m, nil
}

// Charts builds several charts concurrently over the current dataset.
func (s *Session) Charts(ctx context.Context, cfgs []chart.Config) ([]*models.ChartModel, error) {
	ds := s.Dataset()
	if ds == nil {
		return nil, ErrNoDataset
	}

	charts, err := chart.BuildAll(ctx, ds, cfgs)
	if err != nil {
		return nil, err
	}
	for i, cfg := range cfgs {
		if key, err := keyFor(ds, cfg); err == nil {
			s.store(key, charts[i])
		}
	}
	return charts, nil
}

func (s *Session) store(key cacheKey, m *models.ChartModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Skip models built for a dataset that was replaced meanwhile.
	if s.ds != nil && s.ds.ID() == key.datasetID {
		s.cache[key] = m
	}
}

func keyFor(ds *dataset.Dataset, cfg chart.Config) (cacheKey, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return cacheKey{}, err
	}
	return cacheKey{datasetID: ds.ID(), fingerprint: xxhash.Sum64(b)}, nil
}
