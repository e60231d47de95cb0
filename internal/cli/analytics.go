package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/invorto/invorto-go/internal/config"
)

// AnalyticsCommand fetches aggregate analytics for one call.
type AnalyticsCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewAnalyticsCommand constructs an analytics command.
func NewAnalyticsCommand(stdout, stderr io.Writer) *AnalyticsCommand {
	return &AnalyticsCommand{stdout: stdout, stderr: stderr}
}

func (c *AnalyticsCommand) Name() string {
	return "analytics"
}

func (c *AnalyticsCommand) Summary() string {
	return "Show realtime analytics for a call"
}

func (c *AnalyticsCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *AnalyticsCommand) Run(ctx context.Context, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("analytics", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	callID, err := requireArg(rest, "call id")
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

	analytics, err := client.GetCallAnalytics(ctx, callID)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	out.KV([][2]string{
		{"call", analytics.CallID},
		{"events", strconv.Itoa(analytics.TotalEvents)},
		{"duration", strconv.Itoa(analytics.Duration) + "s"},
		{"sentiment", analytics.Sentiment},
		{"topics", strings.Join(analytics.Topics, ", ")},
	})
	if len(analytics.EventTypes) > 0 {
		rows := make([][]string, 0, len(analytics.EventTypes))
		for kind, count := range analytics.EventTypes {
			rows = append(rows, []string{kind, fmt.Sprint(count)})
		}
		out.Table([]string{"EVENT KIND", "COUNT"}, rows)
	}
	return nil
}
