package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/internal/logger"
	"github.com/invorto/invorto-go/internal/ui/console"
	"github.com/invorto/invorto-go/pkg/invorto"
)

// sharedFlags are accepted by every action that talks to the platform.
type sharedFlags struct {
	profile string
}

func (s *sharedFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.profile, "profile", "", "credential profile from invorto.toml")
}

// newClient resolves configuration and credentials and builds a platform client.
func newClient(env config.Env, profile string) (*invorto.Client, error) {
	apiKey, tenantID, err := env.Credentials(profile)
	if err != nil {
		return nil, err
	}

	opts := []invorto.ClientOption{
		invorto.WithBaseURL(env.BaseURL),
		invorto.WithLogger(logger.New(env.LogLevel)),
	}
	if tenantID != "" {
		opts = append(opts, invorto.WithTenant(tenantID))
	}
	if env.RetryMax > 0 {
		opts = append(opts, invorto.WithRetry(env.RetryMax))
	}
	return invorto.NewClient(apiKey, opts...)
}

func newConsole(stdout, stderr io.Writer) *console.Writer {
	return console.New(stdout, stderr)
}

// parseAction parses per-action flags laid out after the action word, so
// invocations read `invorto calls list -limit 10`.
func parseAction(name string, args []string, stderr io.Writer, register func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	if register != nil {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

func requireArg(args []string, what string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("missing %s argument", what)
	}
	return args[0], nil
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func paginationLine(p map[string]any) string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, key := range []string{"page", "limit", "total"} {
		if v, ok := p[key]; ok {
			parts = append(parts, fmt.Sprintf("%s %v", key, v))
		}
	}
	return strings.Join(parts, ", ")
}
