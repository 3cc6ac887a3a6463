package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vxml.yaml"

	// DefaultAddr is the default render server address.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes is the default request body limit of the render server.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "vxml"
)

// Config represents the complete vxml.yaml configuration.
type Config struct {
	// Render configures how trees are serialized.
	Render RenderConfig `yaml:"render"`

	// Server configures the render server.
	Server ServerConfig `yaml:"server"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures OpenTelemetry tracing.
	Tracing TracingConfig `yaml:"tracing"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// EscapeText escapes text content in addition to attribute values.
	EscapeText bool `yaml:"escapeText"`

	// MaxDepth limits element nesting. Zero means no limit.
	MaxDepth int `yaml:"maxDepth" validate:"gte=0"`

	// Tags configures tag name rewriting.
	Tags TagsConfig `yaml:"tags"`
}

// TagsConfig describes a tag rewrite, applied in field order.
type TagsConfig struct {
	// StripPrefixes are removed from the start of a tag; the first match wins.
	StripPrefixes []string `yaml:"stripPrefixes" validate:"dive,required"`

	// Rename maps a tag (after prefix stripping) to a replacement.
	Rename map[string]string `yaml:"rename" validate:"dive,keys,required,endkeys,required"`

	// Case converts the final tag to "lower" or "upper" case.
	Case string `yaml:"case" validate:"omitempty,oneof=lower upper"`
}

// ServerConfig contains render server settings.
type ServerConfig struct {
	// Addr is the address to listen on.
	Addr string `yaml:"addr" validate:"required"`

	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration `yaml:"readTimeout" validate:"gte=0"`

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `yaml:"writeTimeout" validate:"gte=0"`

	// MaxBodyBytes limits the size of a document posted for rendering.
	MaxBodyBytes int64 `yaml:"maxBodyBytes" validate:"gt=0"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics and instruments rendering.
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" validate:"required_if=Enabled true"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled wraps each render in a span.
	Enabled bool `yaml:"enabled"`

	// TracerName is the instrumentation name passed to the tracer provider.
	TracerName string `yaml:"tracerName" validate:"required_if=Enabled true"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format is text or json.
	Format string `yaml:"format" validate:"oneof=text json"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			TracerName: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vxml.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create the file or omit --config to use defaults")
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// LoadOptional is LoadFile, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, errors.New(errors.CodeConfigNotFound)) {
		return New(), nil
	}
	return cfg, err
}

// Parse decodes YAML configuration over the defaults and validates it.
// name is used in error messages only.
func Parse(name string, data []byte) (*Config, error) {
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		e := errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse " + name + ": " + err.Error()).
			WithSuggestion("Check that " + name + " is valid YAML").
			Wrap(err)
		return nil, e
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(errors.CodeConfigInvalid).
		WithDetail(strings.Join(msgs, "; ")).
		Wrap(err)
}

// describeFieldError turns a validator error into "Server.Addr: required".
func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return field + ": " + fe.Tag() + "=" + fe.Param()
	}
	return field + ": " + fe.Tag()
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// ReplaceTag returns the tag rewrite described by the config, or nil when
// none is configured.
func (t TagsConfig) ReplaceTag() func(string) string {
	if len(t.StripPrefixes) == 0 && len(t.Rename) == 0 && t.Case == "" {
		return nil
	}

	prefixes := append([]string(nil), t.StripPrefixes...)
	rename := make(map[string]string, len(t.Rename))
	for k, v := range t.Rename {
		rename[k] = v
	}
	tagCase := t.Case

	return func(tag string) string {
		for _, p := range prefixes {
			if rest, ok := strings.CutPrefix(tag, p); ok {
				tag = rest
				break
			}
		}
		if to, ok := rename[tag]; ok {
			tag = to
		}
		switch tagCase {
		case "lower":
			tag = strings.ToLower(tag)
		case "upper":
			tag = strings.ToUpper(tag)
		}
		return tag
	}
}

// RendererConfig converts the render section into a render.RendererConfig.
func (r RenderConfig) RendererConfig() render.RendererConfig {
	return render.RendererConfig{
		ReplaceTag: r.Tags.ReplaceTag(),
		EscapeText: r.EscapeText,
		MaxDepth:   r.MaxDepth,
	}
}

// SlogLevel returns the configured level as a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
