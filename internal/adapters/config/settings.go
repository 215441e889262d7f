// Package config loads service settings from a config file, the environment
// and command line flags.
package config

import (
	"errors"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. POLYFILL_CACHE_SIZE or POLYFILL_LOG_JSON.
const EnvPrefix = "POLYFILL"

// ConfigFileEnv names the environment variable that points at the config file.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

// Settings holds the service configuration.
type Settings struct {
	Listen      string      `mapstructure:"listen"`
	Catalog     string      `mapstructure:"catalog"`
	CacheSize   int         `mapstructure:"cache_size"`
	Unknown     string      `mapstructure:"unknown"`
	Concurrency int         `mapstructure:"concurrency"`
	Log         LogSettings `mapstructure:"log"`
}

// LogSettings configures the logger adapter.
type LogSettings struct {
	JSON bool `mapstructure:"json"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Listen:      domain.DefaultListenAddr,
		Catalog:     domain.DefaultCatalogPath,
		CacheSize:   domain.DefaultCacheSize,
		Unknown:     string(domain.UnknownIgnore),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// UnknownPolicy returns the configured default unknown-runtime policy.
func (s *Settings) UnknownPolicy() (domain.UnknownPolicy, error) {
	return domain.ParseUnknownPolicy(s.Unknown)
}

// flagKeys maps command line flag names to the settings keys they override.
var flagKeys = map[string]string{
	"catalog": "catalog",
	"listen":  "listen",
}

// NewViper returns a viper instance primed with Defaults and environment
// bindings. Callers may bind command line flags to it before calling Load.
func NewViper() *viper.Viper {
	return NewViperWithDefaults(Defaults())
}

// NewViperWithDefaults is NewViper with caller supplied defaults.
func NewViperWithDefaults(defaults Settings) *viper.Viper {
	v := viper.New()
	v.SetDefault("listen", defaults.Listen)
	v.SetDefault("catalog", defaults.Catalog)
	v.SetDefault("cache_size", defaults.CacheSize)
	v.SetDefault("unknown", defaults.Unknown)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("log.json", defaults.Log.JSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds the flags of fs that override settings keys. A bound flag
// only takes precedence over the environment and the config file once it is
// set explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to bind flag"), "flag", name)
		}
	}
	return nil
}

// Load reads settings from path into v and decodes them. An empty path falls
// back to $POLYFILL_CONFIG and then to polyfill.yaml in the working directory.
// A missing default config file is not an error.
func Load(v *viper.Viper, path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigFileEnv)
		explicit = path != ""
	}
	if !explicit {
		path = domain.DefaultConfigFile
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var parseErr viper.ConfigParseError
		switch {
		case errors.As(err, &notFound), !explicit && errors.Is(err, os.ErrNotExist):
		case errors.As(err, &parseErr):
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
		default:
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if _, err := s.UnknownPolicy(); err != nil {
		return err
	}
	if s.CacheSize <= 0 {
		return zerr.With(zerr.New("cache_size must be positive"), "cache_size", s.CacheSize)
	}
	if s.Concurrency <= 0 {
		s.Concurrency = runtime.GOMAXPROCS(0)
	}
	return nil
}
