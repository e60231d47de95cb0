package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/invorto/invorto-go/pkg/invorto"
)

const (
	// DefaultTomlPath is the configuration file looked up in the working directory.
	DefaultTomlPath = "invorto.toml"

	defaultCountryCode = "+91"
)

// Env holds validated configuration for the CLI, merged from environment
// variables and invorto.toml. Environment variables win.
type Env struct {
	BaseURL        string
	APIKey         string
	TenantID       string
	LogLevel       string
	CountryCode    string
	RetryMax       time.Duration
	DefaultProfile string
	Profiles       []Profile
}

// Profile describes a named credential set defined in invorto.toml.
type Profile struct {
	Name     string
	APIKey   string
	TenantID string
}

// Load reads environment variables, merges invorto.toml, and validates values.
func Load() (Env, error) {
	env := Env{
		BaseURL:        strings.TrimSpace(os.Getenv("INVORTO_BASE_URL")),
		APIKey:         strings.TrimSpace(os.Getenv("INVORTO_API_KEY")),
		TenantID:       strings.TrimSpace(os.Getenv("INVORTO_TENANT_ID")),
		LogLevel:       strings.TrimSpace(os.Getenv("INVORTO_LOG_LEVEL")),
		CountryCode:    strings.TrimSpace(os.Getenv("INVORTO_COUNTRY_CODE")),
		DefaultProfile: strings.TrimSpace(os.Getenv("INVORTO_PROFILE")),
	}

	if raw := strings.TrimSpace(os.Getenv("INVORTO_RETRY_MAX")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Env{}, fmt.Errorf("INVORTO_RETRY_MAX must be a duration like 30s, got %q", raw)
		}
		env.RetryMax = d
	}

	if err := mergeTomlConfig(&env); err != nil {
		return Env{}, err
	}

	if env.BaseURL == "" {
		env.BaseURL = invorto.DefaultBaseURL
	}
	if env.CountryCode == "" {
		env.CountryCode = defaultCountryCode
	}

	if err := validateURL(env.BaseURL, "INVORTO_BASE_URL"); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Credentials resolves the API key and tenant for the requested profile,
// falling back to the top-level key when no profile applies.
func (e Env) Credentials(profile string) (apiKey, tenantID string, err error) {
	if profile == "" {
		profile = e.DefaultProfile
	}
	if profile != "" {
		for _, p := range e.Profiles {
			if p.Name == profile {
				tenant := p.TenantID
				if tenant == "" {
					tenant = e.TenantID
				}
				return p.APIKey, tenant, nil
			}
		}
		return "", "", fmt.Errorf("profile %q not found in %s", profile, DefaultTomlPath)
	}
	if e.APIKey == "" {
		return "", "", errors.New("no API key configured: set INVORTO_API_KEY or add a profile to invorto.toml")
	}
	return e.APIKey, e.TenantID, nil
}

func validateURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be a valid absolute URL, got %q", name, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, raw)
	}
	return nil
}

type tomlConfig struct {
	Defaults struct {
		BaseURL        string `toml:"base_url"`
		TenantID       string `toml:"tenant_id"`
		CountryCode    string `toml:"country_code"`
		LogLevel       string `toml:"log_level"`
		RetryMax       string `toml:"retry_max"`
		DefaultProfile string `toml:"default_profile"`
	} `toml:"defaults"`
	Profiles []struct {
		Name     string `toml:"name"`
		APIKey   string `toml:"api_key"`
		TenantID string `toml:"tenant_id"`
	} `toml:"profiles"`
}

func mergeTomlConfig(env *Env) error {
	path := filepath.Join(".", DefaultTomlPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", DefaultTomlPath, err)
	}

	var cfg tomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse %s: %w", DefaultTomlPath, err)
	}

	if base := strings.TrimSpace(cfg.Defaults.BaseURL); base != "" && env.BaseURL == "" {
		env.BaseURL = base
	}
	if tenant := strings.TrimSpace(cfg.Defaults.TenantID); tenant != "" && env.TenantID == "" {
		env.TenantID = tenant
	}
	if cc := strings.TrimSpace(cfg.Defaults.CountryCode); cc != "" && env.CountryCode == "" {
		env.CountryCode = cc
	}
	if level := strings.TrimSpace(cfg.Defaults.LogLevel); level != "" && env.LogLevel == "" {
		env.LogLevel = level
	}
	if raw := strings.TrimSpace(cfg.Defaults.RetryMax); raw != "" && env.RetryMax == 0 {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse %s: defaults.retry_max must be a duration, got %q", DefaultTomlPath, raw)
		}
		env.RetryMax = d
	}
	if profile := strings.TrimSpace(cfg.Defaults.DefaultProfile); profile != "" && env.DefaultProfile == "" {
		env.DefaultProfile = profile
	}

	for _, p := range cfg.Profiles {
		apiKey := strings.TrimSpace(p.APIKey)
		if apiKey == "" {
			continue
		}
		env.Profiles = append(env.Profiles, Profile{
			Name:     strings.TrimSpace(p.Name),
			APIKey:   apiKey,
			TenantID: strings.TrimSpace(p.TenantID),
		})
	}

	return nil
}
