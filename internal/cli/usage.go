package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/internal/report"
	"github.com/invorto/invorto-go/pkg/invorto"
)

// UsageCommand fetches a tenant's usage snapshot.
type UsageCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewUsageCommand constructs a usage command.
func NewUsageCommand(stdout, stderr io.Writer) *UsageCommand {
	return &UsageCommand{stdout: stdout, stderr: stderr}
}

func (c *UsageCommand) Name() string {
	return "usage"
}

func (c *UsageCommand) Summary() string {
	return "Show tenant usage for a period (1h|24h|7d|30d|1m)"
}

func (c *UsageCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *UsageCommand) Run(ctx context.Context, args []string) error {
	var shared sharedFlags
	var period, export string
	rest, err := parseAction("usage", args, c.stderr, func(fs *flag.FlagSet) {
		shared.register(fs)
		fs.StringVar(&period, "period", string(invorto.DefaultPeriod), "reporting period")
		fs.StringVar(&export, "export", "", "write the snapshot to an xlsx workbook")
	})
	if err != nil {
		return err
	}
	tenantID, err := requireArg(rest, "tenant id")
	if err != nil {
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

	usage, err := client.GetTenantUsage(ctx, tenantID, invorto.Period(period))
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	if export != "" {
		if err := report.WriteUsage(export, usage); err != nil {
			return err
		}
		out.Success("wrote usage snapshot to %s", export)
		return nil
	}

	out.Section(fmt.Sprintf("Usage for %s (%s)", usage.TenantID, usage.Period))
	rows := make([][]string, 0, len(usage.Calls)+len(usage.Agents))
	for k, v := range usage.Calls {
		rows = append(rows, []string{"calls", k, fmt.Sprint(v)})
	}
	for k, v := range usage.Agents {
		rows = append(rows, []string{"agents", k, fmt.Sprint(v)})
	}
	out.Table([]string{"SECTION", "METRIC", "VALUE"}, rows)
	return nil
}
