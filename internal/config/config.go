package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CLASSROOM_BACKEND
const EnvPrefix = "CLASSROOM"

// DefaultDotEnv is the optional env file read by Load
const DefaultDotEnv = ".env"

// Backends
const (
	BackendMemory   = "memory"
	BackendFirebase = "firebase"
)

// Config keys
const (
	KeyEnv             = "env"
	KeyBackend         = "backend"
	KeyFirebaseAPIKey  = "firebase.apiKey"
	KeyFirebaseProject = "firebase.projectID"
	KeyYouTubeAPIKey   = "youtube.apiKey"
	KeyLogMode         = "log.mode"
	KeyEnrichParallel  = "enrich.parallel"
	KeyRequestTimeout  = "request.timeout"
)

// Config is the process configuration resolved from defaults, .env and the environment
type Config struct {
	Env             string
	Backend         string
	FirebaseAPIKey  string
	FirebaseProject string
	YouTubeAPIKey   string
	LogMode         string
	EnrichParallel  int
	RequestTimeout  time.Duration
}

// IsProduction reports whether the config targets production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "prod")
}

// Load reads configuration. A missing dotEnvPath is ignored; pass "" to skip it.
func Load(dotEnvPath string) (*Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "config.godotenv(%s)", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
		}
	}

	conf := newViper()

	cfg := &Config{
		Env:             strings.ToLower(conf.GetString(KeyEnv)),
		Backend:         strings.ToLower(conf.GetString(KeyBackend)),
		FirebaseAPIKey:  conf.GetString(KeyFirebaseAPIKey),
		FirebaseProject: conf.GetString(KeyFirebaseProject),
		YouTubeAPIKey:   conf.GetString(KeyYouTubeAPIKey),
		LogMode:         conf.GetString(KeyLogMode),
		EnrichParallel:  conf.GetInt(KeyEnrichParallel),
		RequestTimeout:  conf.GetDuration(KeyRequestTimeout),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault(KeyEnv, "dev")
	conf.SetDefault(KeyBackend, BackendMemory)
	conf.SetDefault(KeyFirebaseAPIKey, "")
	conf.SetDefault(KeyFirebaseProject, "")
	conf.SetDefault(KeyYouTubeAPIKey, "")
	conf.SetDefault(KeyLogMode, "dev")
	conf.SetDefault(KeyEnrichParallel, 4)
	conf.SetDefault(KeyRequestTimeout, 15*time.Second)

	conf.SetEnvPrefix(EnvPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()
	return conf
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFirebase:
		if c.FirebaseAPIKey == "" || c.FirebaseProject == "" {
			return errors.New("config: firebase backend needs CLASSROOM_FIREBASE_APIKEY and CLASSROOM_FIREBASE_PROJECTID")
		}
	default:
		return errors.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.EnrichParallel < 1 {
		c.EnrichParallel = 1
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 15 * time.Second
	}
	return nil
}
