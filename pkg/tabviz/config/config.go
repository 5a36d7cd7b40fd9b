// Package config loads named load and chart settings from INI files.
//
// A profile is an INI section:
//
//	[sales]
//	format = csv
//	delimiter = semicolon
//	types = amount:Float, code:Text
//	kind = bar
//	x = region
//	y = amount, cost
//	aggregation = mean
package config

import (
	"os/user"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/ukaji3/tabviz-go/pkg/tabviz"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/chart"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/reader"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/schema"
)

const DefaultConfigFile = "~/.tabviz/config"
const DefaultProfile = "default"

// Profile holds the settings of one profile.
type Profile struct {
	Load  tabviz.Options
	Chart chart.Config
}

// NewProfile returns a profile with default settings.
func NewProfile() Profile {
	return Profile{
		Load:  tabviz.DefaultOptions(),
		Chart: chart.DefaultConfig(models.KindTable),
	}
}

// Expand the given file path if it starts with ~/
func expandUser(fname string) (string, error) {
	if strings.HasPrefix(fname, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", err
		}
		return path.Join(usr.HomeDir, fname[2:]), nil
	}
	return fname, nil
}

// Load the named section from the source.
// Source can be either a filename or config bytes.
func loadSection(source interface{}, profile string) (*ini.Section, error) {
	info, err := ini.Load(source)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading config")
	}
	if !info.HasSection(profile) {
		return nil, errors.Errorf("config profile '%s' not found", profile)
	}
	return info.Section(profile), nil
}

// LoadProfileString loads settings from the given profile of the provided config source.
// Keys missing from the profile leave p unchanged.
func LoadProfileString(source, profile string, p *Profile) error {
	section, err := loadSection([]byte(source), profile)
	if err != nil {
		return err
	}
	return parseSection(section, p)
}

// LoadProfileFile loads settings from the given profile of the named config file.
func LoadProfileFile(fname, profile string, p *Profile) error {
	fname, err := expandUser(fname)
	if err != nil {
		return err
	}
	section, err := loadSection(fname, profile)
	if err != nil {
		return err
	}
	return parseSection(section, p)
}

func parseSection(s *ini.Section, p *Profile) error {
	if err := parseLoad(s, &p.Load); err != nil {
		return errors.Wrapf(err, "profile '%s'", s.Name())
	}
	if err := parseChart(s, &p.Chart); err != nil {
		return errors.Wrapf(err, "profile '%s'", s.Name())
	}
	return nil
}

func parseLoad(s *ini.Section, o *tabviz.Options) error {
	if v := s.Key("format").String(); v != "" {
		o.Reader.Format = reader.Format(strings.ToLower(v))
	}
	if v := s.Key("delimiter").String(); v != "" {
		d, err := ParseDelimiter(v)
		if err != nil {
			return err
		}
		o.Reader.Delimiter = d
	}
	if v := s.Key("sheet").String(); v != "" {
		o.Reader.Sheet = v
	}
	if v := s.Key("range").String(); v != "" {
		o.Reader.Range = v
	}
	if v := s.Key("shape").String(); v != "" {
		o.Reader.Shape = reader.JSONShape(strings.ToLower(v))
	}
	if s.HasKey("header") {
		b, err := s.Key("header").Bool()
		if err != nil {
			return errors.Wrapf(err, "invalid header")
		}
		o.Reader.HasHeader = &b
	}
	if s.HasKey("trim") {
		b, err := s.Key("trim").Bool()
		if err != nil {
			return errors.Wrapf(err, "invalid trim")
		}
		o.Reader.TrimSpace = b
	}

	if v := s.Key("fill").String(); v != "" {
		switch f := schema.FillPolicy(strings.ToLower(v)); f {
		case schema.FillPad, schema.FillNone:
			o.Schema.Fill = f
		default:
			return errors.Errorf("invalid fill policy '%s'", v)
		}
	}
	if s.HasKey("labels") {
		o.Schema.Labels = s.Key("labels").Strings(",")
	}
	if s.HasKey("date_layouts") {
		o.Schema.DateLayouts = s.Key("date_layouts").Strings("|")
	}
	if s.HasKey("types") {
		types := make(map[string]dataset.Type)
		for _, pair := range s.Key("types").Strings(",") {
			name, typ, ok := strings.Cut(pair, ":")
			if !ok {
				return errors.Errorf("invalid type override '%s'", pair)
			}
			t, err := dataset.ParseType(typ)
			if err != nil {
				return errors.Wrapf(err, "column '%s'", strings.TrimSpace(name))
			}
			types[strings.TrimSpace(name)] = t
		}
		o.Schema.Types = types
	}
	return nil
}

func parseChart(s *ini.Section, c *chart.Config) error {
	if v := s.Key("kind").String(); v != "" {
		k, err := chart.ParseKind(v)
		if err != nil {
			return err
		}
		c.Kind = k
	}
	if v := s.Key("aggregation").String(); v != "" {
		a, err := chart.ParseAggregation(v)
		if err != nil {
			return err
		}
		c.Aggregation = a
	}

	strs := map[string]*string{
		"title":       &c.Title,
		"x":           &c.XColumn,
		"x_label":     &c.XLabel,
		"y_label":     &c.YLabel,
		"date_format": &c.DateFormat,
		"node":        &c.NodeColumn,
		"parent":      &c.ParentColumn,
		"label":       &c.LabelColumn,
		"sort":        &c.SortColumn,
	}
	for key, dst := range strs {
		if v := s.Key(key).String(); v != "" {
			*dst = v
		}
	}
	if s.HasKey("y") {
		c.YColumns = s.Key("y").Strings(",")
	}

	ints := map[string]*int{
		"tick_count": &c.TickCount,
		"page":       &c.Page,
		"page_size":  &c.PageSize,
	}
	for key, dst := range ints {
		if !s.HasKey(key) {
			continue
		}
		n, err := s.Key(key).Int()
		if err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
		*dst = n
	}
	if s.HasKey("exclude_rows") {
		rows, err := s.Key("exclude_rows").StrictInts(",")
		if err != nil {
			return errors.Wrapf(err, "invalid exclude_rows")
		}
		c.ExcludeRows = rows
	}

	bools := map[string]*bool{
		"stacked":    &c.Stacked,
		"horizontal": &c.Horizontal,
		"descending": &c.Descending,
	}
	for key, dst := range bools {
		if !s.HasKey(key) {
			continue
		}
		b, err := s.Key(key).Bool()
		if err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
		*dst = b
	}
	if s.HasKey("color_seed") {
		f, err := s.Key("color_seed").Float64()
		if err != nil {
			return errors.Wrapf(err, "invalid color_seed")
		}
		c.ColorSeed = f
	}
	return nil
}

// ParseDelimiter accepts a single character or one of the names tab, comma,
// semicolon and pipe.
func ParseDelimiter(v string) (rune, error) {
	switch strings.ToLower(v) {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(v) != 1 {
		return 0, errors.Errorf("invalid delimiter '%s'", v)
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r, nil
}
