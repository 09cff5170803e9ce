// Package manifest reads the small declarative records that tell the host
// which plugins exist in a plugins directory. Manifests are only used for
// discovery; plugin code never sees them.
package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Kind is how a plugin artifact is deployed.
type Kind string

const (
	KindNative Kind = "native"
	KindScript Kind = "script"
)

// Format is a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Manifest describes one plugin artifact.
type Manifest struct {
	// IID is the dotted interface identifier, e.g. "org.example.HelloTool".
	IID string `json:"iid" yaml:"iid" validate:"required,iid"`
	// File is the artifact the manifest belongs to.
	File    string `json:"file" yaml:"file" validate:"required"`
	Kind    Kind   `json:"kind" yaml:"kind" default:"native" validate:"oneof=native script"`
	Enabled bool   `json:"enabled" yaml:"enabled" default:"true"`

	// Path is where the manifest was read from. Not serialized.
	Path string `json:"-" yaml:"-"`
}

var (
	iidPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(\.[A-Za-z][A-Za-z0-9_-]*)+$`)
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("iid", func(fl validator.FieldLevel) bool {
		return iidPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks required fields and the identifier format.
func (m Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return apperrors.NewValidation(fmt.Sprintf("invalid manifest %q", m.IID)).
			WithInnerError(err).
			WithDetail("path", m.Path)
	}
	return nil
}

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", apperrors.NewInvalid("path", path, "unsupported manifest extension")
	}
}

// Parse decodes and validates one manifest. Defaults are applied before
// decoding so explicit values in the document win.
func Parse(data []byte, format Format) (Manifest, error) {
	var m Manifest
	if err := defaults.Set(&m); err != nil {
		return Manifest{}, apperrors.Wrap(err, "set manifest defaults")
	}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&m)
	default:
		return Manifest{}, apperrors.NewInvalid("format", format, "unsupported manifest format")
	}
	if err != nil {
		return Manifest{}, apperrors.WrapWithType(err, apperrors.ErrorTypeValidation, "decode manifest")
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Load reads one manifest file from fs.
func Load(fs afero.Fs, path string) (Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Manifest{}, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Manifest{}, apperrors.Wrap(err, fmt.Sprintf("read manifest %s", path))
	}
	m, err := Parse(data, format)
	if err != nil {
		return Manifest{}, apperrors.Wrap(err, path)
	}
	m.Path = path
	return m, nil
}

// Marshal encodes m in the given format.
func Marshal(m Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	case FormatYAML:
		return yaml.Marshal(m)
	default:
		return nil, apperrors.NewInvalid("format", format, "unsupported manifest format")
	}
}
