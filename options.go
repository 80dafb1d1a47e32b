package tableprint

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOptions reports options that fail to decode or validate.
var ErrInvalidOptions = errors.New("invalid options")

// Options controls field selection and column sizing. The zero value is
// ready to use.
type Options struct {
	// Only replaces the default fields when at least one of its names is
	// supported by the first record. Include and Except are then ignored.
	Only FieldList `yaml:"only" toml:"only"`
	// Include appends fields to the defaults.
	Include FieldList `yaml:"include" toml:"include"`
	// Except removes fields from the defaults and Include.
	Except FieldList `yaml:"except" toml:"except"`

	// Columns holds per-field overrides keyed by field name.
	Columns map[string]ColumnOptions `yaml:"columns" toml:"columns" validate:"dive"`

	// MaxWidth caps every column without its own cap. Default 30.
	MaxWidth int `yaml:"max_field_length" toml:"max_field_length" validate:"gte=0"`
	// SampleBudget bounds the width scan of each column. Default 2s.
	SampleBudget time.Duration `yaml:"sample_budget" toml:"sample_budget" validate:"gte=0"`
	// TimeLayout formats timestamp values. Default [DefaultTimeLayout].
	TimeLayout string `yaml:"time_layout" toml:"time_layout"`

	// Clock replaces time.Now while sampling.
	Clock func() time.Time `yaml:"-" toml:"-"`
}

// ColumnOptions overrides the rendering of one field.
type ColumnOptions struct {
	// Name replaces the display name, which defaults to the field name with
	// underscores turned into spaces.
	Name string `yaml:"name" toml:"name"`
	// MaxWidth caps the column. Negative values clamp to 1.
	MaxWidth int `yaml:"max_field_length" toml:"max_field_length" validate:"gte=0"`
	// Width fixes the column width and skips sampling.
	Width int `yaml:"field_length" toml:"field_length" validate:"gte=0"`
}

// FieldList is a list of field names. Configuration files may give either a
// single name or a list.
type FieldList []string

// UnmarshalYAML accepts a scalar or a sequence of scalars. Null entries are
// dropped.
func (l *FieldList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() == "!!null" {
			*l = nil
			return nil
		}
		*l = FieldList{value.Value}
		return nil
	case yaml.SequenceNode:
		names := make(FieldList, 0, len(value.Content))
		for _, n := range value.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: field names must be scalars", n.Line)
			}
			if n.ShortTag() == "!!null" {
				continue
			}
			names = append(names, n.Value)
		}
		*l = names
		return nil
	default:
		return fmt.Errorf("line %d: expected a field name or a list of field names", value.Line)
	}
}

// UnmarshalTOML accepts a string or an array of strings.
func (l *FieldList) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*l = FieldList{v}
		return nil
	case []any:
		names := make(FieldList, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("field names must be strings, got %T", e)
			}
			names = append(names, s)
		}
		*l = names
		return nil
	default:
		return fmt.Errorf("expected a field name or a list of field names, got %T", data)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate rejects negative widths and budgets. Rendering itself never
// fails; it clamps out-of-range values instead.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// ConfigFormat is an options file encoding.
type ConfigFormat string

const (
	ConfigYAML ConfigFormat = "yaml"
	ConfigJSON ConfigFormat = "json"
	ConfigTOML ConfigFormat = "toml"
)

// ParseConfigFormat maps a file extension, with or without the dot, to a
// format.
func ParseConfigFormat(ext string) (ConfigFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return ConfigYAML, nil
	case "json":
		return ConfigJSON, nil
	case "toml":
		return ConfigTOML, nil
	default:
		return "", fmt.Errorf("%w: unsupported config format %q", ErrInvalidOptions, ext)
	}
}

// DecodeOptions reads and validates options. JSON goes through the YAML
// decoder. Unknown YAML and JSON keys are rejected. An empty document yields
// the zero Options.
func DecodeOptions(r io.Reader, format ConfigFormat) (Options, error) {
	var opts Options
	switch format {
	case ConfigYAML, ConfigJSON:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	case ConfigTOML:
		if _, err := toml.NewDecoder(r).Decode(&opts); err != nil {
			return Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	default:
		return Options{}, fmt.Errorf("%w: unsupported config format %q", ErrInvalidOptions, format)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptions reads options from a file, picking the format from its
// extension.
func LoadOptions(path string) (Options, error) {
	format, err := ParseConfigFormat(filepath.Ext(path))
	if err != nil {
		return Options{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open options: %w", err)
	}
	defer f.Close()
	return DecodeOptions(f, format)
}

func (o Options) displayName(field string) string {
	if name := o.Columns[field].Name; name != "" {
		return name
	}
	return strings.ReplaceAll(field, "_", " ")
}

// maxWidth resolves the cap for field, never below 1.
func (o Options) maxWidth(field string) int {
	width := DefaultMaxWidth
	if o.MaxWidth != 0 {
		width = o.MaxWidth
	}
	if c := o.Columns[field].MaxWidth; c != 0 {
		width = c
	}
	return max(width, 1)
}

func (o Options) sampleBudget() time.Duration {
	if o.SampleBudget > 0 {
		return o.SampleBudget
	}
	return DefaultSampleBudget
}

func (o Options) timeLayout() string {
	if o.TimeLayout != "" {
		return o.TimeLayout
	}
	return DefaultTimeLayout
}

func (o Options) clock() func() time.Time {
	if o.Clock != nil {
		return o.Clock
	}
	return time.Now
}
