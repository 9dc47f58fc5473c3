// Package config loads the application configuration from YAML files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath          = "."
	defaultLoginURL      = "https://login.salesforce.com"
	defaultAPIVersion    = "v59.0"
	defaultTokenLifetime = 2 * time.Hour
	defaultStorePath     = "./data/session"
	defaultMinDelay      = 300 * time.Millisecond
	defaultMaxDelay      = 500 * time.Millisecond
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Salesforce holds the connected-app settings for the live backend.
	// When ClientID or RedirectURI is blank the synthetic backend is forced.
	Salesforce *SalesforceConfig `json:"salesforce" yaml:"salesforce"`

	// Session configures the local credential store.
	Session *SessionConfig `json:"session" yaml:"session"`

	// Synthetic configures the fixture-backed demo backend.
	Synthetic *SyntheticConfig `json:"synthetic" yaml:"synthetic"`
}

// SalesforceConfig defines the connected-app and REST API settings.
type SalesforceConfig struct {
	ClientID    string `json:"clientId" yaml:"clientId"`
	RedirectURI string `json:"redirectUri" yaml:"redirectUri"`
	LoginURL    string `json:"loginUrl" yaml:"loginUrl"`
	APIVersion  string `json:"apiVersion" yaml:"apiVersion"`

	// TokenLifetime is the estimated lifetime of an implicit-grant token.
	// The provider does not always return expires_in in the redirect
	// fragment; when it does, that value wins over this estimate.
	TokenLifetime time.Duration `json:"tokenLifetime" yaml:"tokenLifetime"`
}

// SessionConfig defines where the credential store keeps its data.
type SessionConfig struct {
	StorePath string `json:"storePath" yaml:"storePath"`
	InMemory  bool   `json:"inMemory" yaml:"inMemory"`
}

// SyntheticConfig defines the demo backend behaviour.
type SyntheticConfig struct {
	// Forced selects the synthetic backend even when Salesforce is configured.
	Forced   bool          `json:"forced" yaml:"forced"`
	MinDelay time.Duration `json:"minDelay" yaml:"minDelay"`
	MaxDelay time.Duration `json:"maxDelay" yaml:"maxDelay"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SyntheticForced reports whether the synthetic backend must be used:
// either explicitly requested, or the connected app is not configured.
func (c *Config) SyntheticForced() bool {
	if c.Synthetic != nil && c.Synthetic.Forced {
		return true
	}

	return c.Salesforce == nil ||
		strings.TrimSpace(c.Salesforce.ClientID) == "" ||
		strings.TrimSpace(c.Salesforce.RedirectURI) == ""
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SALESFORCE_CLIENTID -> salesforce.clientId (not salesforce.clientid)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Salesforce != nil {
		if strings.TrimSpace(cfg.Salesforce.LoginURL) == "" {
			cfg.Salesforce.LoginURL = defaultLoginURL
		}
		if strings.TrimSpace(cfg.Salesforce.APIVersion) == "" {
			cfg.Salesforce.APIVersion = defaultAPIVersion
		}
		if cfg.Salesforce.TokenLifetime <= 0 {
			cfg.Salesforce.TokenLifetime = defaultTokenLifetime
		}
	}

	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if strings.TrimSpace(cfg.Session.StorePath) == "" {
		cfg.Session.StorePath = defaultStorePath
	}

	if cfg.Synthetic == nil {
		cfg.Synthetic = &SyntheticConfig{}
	}
	if cfg.Synthetic.MinDelay <= 0 {
		cfg.Synthetic.MinDelay = defaultMinDelay
	}
	if cfg.Synthetic.MaxDelay < cfg.Synthetic.MinDelay {
		cfg.Synthetic.MaxDelay = defaultMaxDelay
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
