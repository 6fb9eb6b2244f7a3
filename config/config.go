package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/gamestate/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Format is an on-disk encoding of the settings document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .yml or .yaml is treated as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and parses a settings file
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.SettingsNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to read settings file").
			WithDetail("path", path)
	}

	settings, err := LoadFromBytes(data, FormatFromPath(path))
	if err != nil {
		if gameErr, ok := errors.As(err); ok {
			return nil, gameErr.WithDetail("path", path)
		}
		return nil, err
	}
	return settings, nil
}

// LoadFromBytes parses a settings document, validates it against the settings
// schema, applies defaults and checks semantic constraints.
func LoadFromBytes(data []byte, format Format) (*Settings, error) {
	expanded := expandEnvVars(string(data))

	raw := make(map[string]interface{})
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal([]byte(expanded), &raw)
	default:
		err = toml.Unmarshal([]byte(expanded), &raw)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse settings").
			WithDetail("format", string(format))
	}
	if raw == nil {
		raw = make(map[string]interface{})
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create settings validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "schema validation failed")
	}

	settings, err := decodeSettings(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to decode settings")
	}

	settings.SetDefaults()

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// decodeSettings maps a generic document onto Settings. Top-level keys with no
// matching field are kept as extensions.
func decodeSettings(raw map[string]interface{}) (*Settings, error) {
	var settings Settings
	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	for _, key := range md.Unused {
		if strings.ContainsAny(key, ".[") {
			continue
		}
		if settings.Extensions == nil {
			settings.Extensions = make(map[string]interface{})
		}
		settings.Extensions[key] = raw[key]
	}

	return &settings, nil
}

// Marshal encodes settings in the given format.
func Marshal(settings *Settings, format Format) ([]byte, error) {
	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return nil, err
	}
	if len(settings.Extensions) == 0 {
		return data, nil
	}

	// Extension sections have no struct field to hang off in TOML, so the
	// document is re-encoded as a map with the extensions merged in.
	doc := make(map[string]interface{})
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for key, value := range settings.Extensions {
		if _, exists := doc[key]; !exists {
			doc[key] = value
		}
	}
	return toml.Marshal(doc)
}

// Save writes settings to path, creating the parent directory if needed. The
// file is replaced atomically.
func Save(settings *Settings, path string) error {
	data, err := Marshal(settings, FormatFromPath(path))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSettingsWrite, "failed to encode settings").
			WithDetail("path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeSettingsWrite, "failed to create settings directory").
			WithDetail("path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSettingsWrite, "failed to create temporary settings file").
			WithDetail("path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrCodeSettingsWrite, "failed to write settings file").
			WithDetail("path", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrCodeSettingsWrite, "failed to write settings file").
			WithDetail("path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrCodeSettingsWrite, "failed to replace settings file").
			WithDetail("path", path)
	}

	return nil
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
