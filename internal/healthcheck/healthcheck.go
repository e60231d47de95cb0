package healthcheck

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/pkg/invorto"
)

const connectivityTimeout = 10 * time.Second

// CheckConfig verifies invorto.toml, when present, parses and carries usable values.
func CheckConfig() error {
	data, err := os.ReadFile(config.DefaultTomlPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Pure environment-variable configuration is fine.
			return nil
		}
		return fmt.Errorf("read configuration file %q: %w", config.DefaultTomlPath, err)
	}

	var cfg struct {
		Profiles []struct {
			Name   string `toml:"name"`
			APIKey string `toml:"api_key"`
		} `toml:"profiles"`
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse configuration file %q (invalid TOML): %w", config.DefaultTomlPath, err)
	}

	for _, p := range cfg.Profiles {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%s: every [[profiles]] entry needs a name", config.DefaultTomlPath)
		}
		if strings.TrimSpace(p.APIKey) == "" {
			return fmt.Errorf("%s: profile %q has no api_key", config.DefaultTomlPath, p.Name)
		}
	}
	return nil
}

// CheckCredentials verifies that a usable API key can be resolved.
func CheckCredentials(env config.Env, profile string) error {
	_, _, err := env.Credentials(profile)
	return err
}

// CheckConnectivity exchanges a health probe with the configured platform.
func CheckConnectivity(ctx context.Context, env config.Env, profile string) (string, error) {
	apiKey, tenantID, err := env.Credentials(profile)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, connectivityTimeout)
	defer cancel()

	opts := []invorto.ClientOption{invorto.WithBaseURL(env.BaseURL)}
	if tenantID != "" {
		opts = append(opts, invorto.WithTenant(tenantID))
	}

	var status string
	err = invorto.WithSession(apiKey, opts, func(client *invorto.Client) error {
		health, err := client.Health(ctx)
		if err != nil {
			return err
		}
		if s, ok := health["status"].(string); ok {
			status = s
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}
