package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/invorto/invorto-go/internal/config"
)

// HealthCommand probes API health.
type HealthCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewHealthCommand constructs a health command.
func NewHealthCommand(stdout, stderr io.Writer) *HealthCommand {
	return &HealthCommand{stdout: stdout, stderr: stderr}
}

func (c *HealthCommand) Name() string {
	return "health"
}

func (c *HealthCommand) Summary() string {
	return "Check platform API health"
}

func (c *HealthCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *HealthCommand) Run(ctx context.Context, args []string) error {
	var shared sharedFlags
	if _, err := parseAction("health", args, c.stderr, shared.register); err != nil {
		return err
	}

	env, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	health, err := client.Health(ctx)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	pairs := make([][2]string, 0, len(health))
	for k, v := range health {
		pairs = append(pairs, [2]string{k, fmt.Sprint(v)})
	}
	out.KV(pairs)
	return nil
}

// MetricsCommand dumps the platform's exposition-format metrics.
type MetricsCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewMetricsCommand constructs a metrics command.
func NewMetricsCommand(stdout, stderr io.Writer) *MetricsCommand {
	return &MetricsCommand{stdout: stdout, stderr: stderr}
}

func (c *MetricsCommand) Name() string {
	return "metrics"
}

func (c *MetricsCommand) Summary() string {
	return "Dump platform metrics (exposition format)"
}

func (c *MetricsCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *MetricsCommand) Run(ctx context.Context, args []string) error {
	var shared sharedFlags
	if _, err := parseAction("metrics", args, c.stderr, shared.register); err != nil {
		return err
	}

	env, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	metrics, err := client.Metrics(ctx)
	if err != nil {
		return err
	}
	newConsole(c.stdout, c.stderr).RawLine("%s", metrics)
	return nil
}
