// Package main provides the CLI entry point for tabviz.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/chart"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/config"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/output"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/reader"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/schema"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/session"
)

var (
	outputPath string
	pretty     bool
	verbose    bool
	configPath string
	profile    string

	format    string
	delimiter string
	sheet     string
	cellRange string
	noHeader  bool
	trim      bool
	fill      string
	types     []string

	previewRows int

	xColumn     string
	yColumns    []string
	title       string
	aggregation string
	dateFormat  string
	tickCount   int
	stacked     bool
	horizontal  bool
	nodeColumn  string
	parentCol   string
	labelColumn string
	page        int
	pageSize    int
	sortColumn  string
	descending  bool
	excludeRows []int
	colorSeed   float64
	chartsDir   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabviz",
		Short: "Turn tabular files into chart models",
		Long: `tabviz reads CSV, TSV, JSON, xlsx and Parquet files, infers a typed
dataset and outputs renderer-agnostic chart models as JSON.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	pf.StringVar(&configPath, "config", "", "INI file with load and chart profiles (default: "+config.DefaultConfigFile+")")
	pf.StringVar(&profile, "profile", "", "Profile name in the config file")
	pf.StringVar(&format, "format", "", "Input format: csv, tsv, json, xlsx, parquet (default: detect)")
	pf.StringVar(&delimiter, "delimiter", "", "CSV delimiter (default: detect)")
	pf.StringVar(&sheet, "sheet", "", "Spreadsheet sheet name or 0-based index")
	pf.StringVar(&cellRange, "range", "", "Spreadsheet cell range, e.g. B2:E20")
	pf.BoolVar(&noHeader, "no-header", false, "Treat the first row as data")
	pf.BoolVar(&trim, "trim", false, "Trim whitespace around cells")
	pf.StringVar(&fill, "fill", "", "Ragged row policy: pad or none")
	pf.StringSliceVar(&types, "type", nil, "Force a column type, e.g. --type code:Text")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the inferred schema and the first rows",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().IntVar(&previewRows, "rows", output.DefaultPreviewRows, "Number of preview rows")

	chartCmd := &cobra.Command{
		Use:   "chart [kind[,kind...]] [file]",
		Short: "Build chart models (line, bar, table, tree)",
		Long: `Build chart models (line, bar, table, tree).
Without a kind argument the profile's kind is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE:  runChart,
	}
	cf := chartCmd.Flags()
	cf.StringVarP(&xColumn, "x", "x", "", "Category or x-axis column")
	cf.StringSliceVarP(&yColumns, "y", "y", nil, "Value columns")
	cf.StringVar(&title, "title", "", "Chart title")
	cf.StringVar(&aggregation, "agg", "", "Bar aggregation: sum, mean, min, max")
	cf.StringVar(&dateFormat, "date-format", "", "Go time layout for dates (default: 2006-01-02)")
	cf.IntVar(&tickCount, "ticks", chart.DefaultTickCount, "Preferred number of axis ticks")
	cf.BoolVar(&stacked, "stacked", false, "Stack bar series")
	cf.BoolVar(&horizontal, "horizontal", false, "Draw horizontal bars")
	cf.StringVar(&nodeColumn, "node", "", "Tree node ID column (default: --x)")
	cf.StringVar(&parentCol, "parent", "", "Tree parent column (default: first --y)")
	cf.StringVar(&labelColumn, "label", "", "Tree node label column")
	cf.IntVar(&page, "page", 0, "Table page (0-based)")
	cf.IntVar(&pageSize, "page-size", 0, "Table rows per page (0: all)")
	cf.StringVar(&sortColumn, "sort", "", "Table sort column")
	cf.BoolVar(&descending, "desc", false, "Sort descending")
	cf.IntSliceVar(&excludeRows, "exclude-rows", nil, "Dataset rows to leave out")
	cf.Float64Var(&colorSeed, "seed", 0, "Palette seed")
	cf.StringVar(&chartsDir, "charts-dir", "", "Directory for per-chart output files")

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range reader.Formats {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
		},
	}

	rootCmd.AddCommand(inspectCmd, chartCmd, formatsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadProfile reads the configured profile and applies load flags on top.
// Without --config or --profile the defaults are used.
func loadProfile(cmd *cobra.Command) (config.Profile, error) {
	p := config.NewProfile()
	if configPath != "" || profile != "" {
		path := configPath
		if path == "" {
			path = config.DefaultConfigFile
		}
		name := profile
		if name == "" {
			name = config.DefaultProfile
		}
		if err := config.LoadProfileFile(path, name, &p); err != nil {
			return p, err
		}
	}

	flags := cmd.Flags()
	r := &p.Load.Reader
	if flags.Changed("format") {
		r.Format = reader.Format(strings.ToLower(format))
	}
	if flags.Changed("delimiter") {
		d, err := config.ParseDelimiter(delimiter)
		if err != nil {
			return p, err
		}
		r.Delimiter = d
	}
	if flags.Changed("sheet") {
		r.Sheet = sheet
	}
	if flags.Changed("range") {
		r.Range = cellRange
	}
	if flags.Changed("no-header") {
		header := !noHeader
		r.HasHeader = &header
	}
	if flags.Changed("trim") {
		r.TrimSpace = trim
	}

	s := &p.Load.Schema
	if flags.Changed("fill") {
		switch f := schema.FillPolicy(fill); f {
		case schema.FillPad, schema.FillNone:
			s.Fill = f
		default:
			return p, fmt.Errorf("invalid fill policy: %s (must be pad or none)", fill)
		}
	}
	if len(types) > 0 {
		if s.Types == nil {
			s.Types = make(map[string]dataset.Type)
		}
		for _, pair := range types {
			name, typ, ok := strings.Cut(pair, ":")
			if !ok {
				return p, fmt.Errorf("invalid --type %q (want name:Type)", pair)
			}
			t, err := dataset.ParseType(typ)
			if err != nil {
				return p, err
			}
			s.Types[name] = t
		}
	}
	return p, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	p, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	p.Load.Logger = logger

	sess := session.New(session.WithLogger(logger), session.WithOptions(p.Load))
	ds, err := sess.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	jsonData, err := output.DatasetToJSON(ds, previewRows, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, jsonData)
}

func runChart(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	p, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	p.Load.Logger = logger

	kinds, path, err := chartArgs(args, p.Chart.Kind)
	if err != nil {
		return err
	}

	base, err := chartConfig(cmd, p.Chart)
	if err != nil {
		return err
	}
	cfgs := make([]chart.Config, len(kinds))
	for i, kind := range kinds {
		cfgs[i] = base
		cfgs[i].Kind = kind
	}

	sess := session.New(session.WithLogger(logger), session.WithOptions(p.Load))
	if _, err := sess.LoadFile(path); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	charts, err := sess.Charts(context.Background(), cfgs)
	if err != nil {
		return fmt.Errorf("chart failed: %w", err)
	}

	if chartsDir != "" {
		if err := writeChartFiles(charts, chartsDir); err != nil {
			return fmt.Errorf("failed to write chart files: %w", err)
		}
		if outputPath == "" {
			return nil
		}
	}

	var v any = charts
	if len(charts) == 1 {
		v = charts[0]
	}
	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, jsonData)
}

// chartArgs splits the chart command arguments into kinds and the input
// file. With a single argument the kind comes from the profile.
func chartArgs(args []string, profileKind models.ChartKind) ([]models.ChartKind, string, error) {
	if len(args) == 1 {
		if profileKind == "" {
			return nil, "", fmt.Errorf("no chart kind given and the profile sets none")
		}
		return []models.ChartKind{profileKind}, args[0], nil
	}

	var kinds []models.ChartKind
	for _, name := range strings.Split(args[0], ",") {
		kind, err := chart.ParseKind(name)
		if err != nil {
			return nil, "", err
		}
		kinds = append(kinds, kind)
	}
	return kinds, args[1], nil
}

// chartConfig applies chart flags on top of the profile's chart settings.
func chartConfig(cmd *cobra.Command, cfg chart.Config) (chart.Config, error) {
	flags := cmd.Flags()
	strs := map[string]struct {
		dst *string
		val string
	}{
		"x":           {&cfg.XColumn, xColumn},
		"title":       {&cfg.Title, title},
		"date-format": {&cfg.DateFormat, dateFormat},
		"node":        {&cfg.NodeColumn, nodeColumn},
		"parent":      {&cfg.ParentColumn, parentCol},
		"label":       {&cfg.LabelColumn, labelColumn},
		"sort":        {&cfg.SortColumn, sortColumn},
	}
	for name, f := range strs {
		if flags.Changed(name) {
			*f.dst = f.val
		}
	}
	if flags.Changed("y") {
		cfg.YColumns = yColumns
	}
	if flags.Changed("agg") {
		agg, err := chart.ParseAggregation(aggregation)
		if err != nil {
			return cfg, err
		}
		cfg.Aggregation = agg
	}
	if flags.Changed("ticks") {
		cfg.TickCount = tickCount
	}
	if flags.Changed("stacked") {
		cfg.Stacked = stacked
	}
	if flags.Changed("horizontal") {
		cfg.Horizontal = horizontal
	}
	if flags.Changed("page") {
		cfg.Page = page
	}
	if flags.Changed("page-size") {
		cfg.PageSize = pageSize
	}
	if flags.Changed("desc") {
		cfg.Descending = descending
	}
	if flags.Changed("exclude-rows") {
		cfg.ExcludeRows = excludeRows
	}
	if flags.Changed("seed") {
		cfg.ColorSeed = colorSeed
	}
	return cfg, nil
}

func writeOutput(cmd *cobra.Command, jsonData []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func writeChartFiles(charts []*models.ChartModel, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, m := range charts {
		jsonData, err := output.ChartToJSON(m, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%02d_%s.json", i+1, m.Kind))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
