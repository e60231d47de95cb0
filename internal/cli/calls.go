package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/internal/report"
	"github.com/invorto/invorto-go/pkg/invorto"
)

// CallsCommand manages calls: list, get, create, status, timeline, artifacts.
type CallsCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewCallsCommand constructs a calls command.
func NewCallsCommand(stdout, stderr io.Writer) *CallsCommand {
	return &CallsCommand{stdout: stdout, stderr: stderr}
}

func (c *CallsCommand) Name() string {
	return "calls"
}

func (c *CallsCommand) Summary() string {
	return "Manage calls (list|get|create|status|timeline|artifacts)"
}

func (c *CallsCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *CallsCommand) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: calls <list|get|create|status|timeline|artifacts> [flags]")
	}

	env, err := config.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.list(ctx, env, args[1:])
	case "get":
		return c.get(ctx, env, args[1:])
	case "create":
		return c.create(ctx, env, args[1:])
	case "status":
		return c.status(ctx, env, args[1:])
	case "timeline":
		return c.timeline(ctx, env, args[1:])
	case "artifacts":
		return c.artifacts(ctx, env, args[1:])
	default:
		return fmt.Errorf("unknown calls action %q", args[0])
	}
}

func (c *CallsCommand) list(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	var export string
	opts := invorto.NewCallListOptions()
	_, err := parseAction("calls list", args, c.stderr, func(fs *flag.FlagSet) {
		shared.register(fs)
		fs.IntVar(&opts.Page, "page", opts.Page, "page number")
		fs.IntVar(&opts.Limit, "limit", opts.Limit, "page size")
		fs.StringVar(&opts.Status, "status", "", "filter by status")
		fs.StringVar(&opts.AgentID, "agent", "", "filter by agent id")
		fs.StringVar(&opts.From, "from", "", "filter by caller number")
		fs.StringVar(&opts.To, "to", "", "filter by callee number")
		fs.StringVar(&export, "export", "", "write results to an xlsx workbook")
	})
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	page, err := client.ListCalls(ctx, &opts)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	if export != "" {
		if err := report.WriteCalls(export, page.Calls); err != nil {
			return err
		}
		out.Success("wrote %d calls to %s", len(page.Calls), export)
		return nil
	}

	rows := make([][]string, 0, len(page.Calls))
	for _, call := range page.Calls {
		duration := "-"
		if call.Duration != nil {
			duration = strconv.Itoa(*call.Duration)
		}
		rows = append(rows, []string{call.ID, call.AgentID, string(call.Direction), call.FromNum, call.ToNum, string(call.Status), duration})
	}
	out.Table([]string{"ID", "AGENT", "DIR", "FROM", "TO", "STATUS", "DUR"}, rows)
	if line := paginationLine(page.Pagination); line != "" {
		out.Info("%s", line)
	}
	return nil
}

func (c *CallsCommand) get(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("calls get", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	callID, err := requireArg(rest, "call id")
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	call, err := client.GetCall(ctx, callID)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	pairs := [][2]string{
		{"id", call.ID},
		{"agent", call.AgentID},
		{"direction", string(call.Direction)},
		{"from", call.FromNum},
		{"to", call.ToNum},
		{"status", string(call.Status)},
		{"started", call.StartedAt},
		{"ended", strOrDash(call.EndedAt)},
	}
	if call.Duration != nil {
		pairs = append(pairs, [2]string{"duration", strconv.Itoa(*call.Duration) + "s"})
	}
	if call.CostINR != nil {
		pairs = append(pairs, [2]string{"cost", "INR " + strconv.FormatFloat(*call.CostINR, 'f', 2, 64)})
	}
	out.KV(pairs)
	return nil
}

func (c *CallsCommand) create(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	var agentID, to, from, direction string
	var noRecording, noTranscription bool
	_, err := parseAction("calls create", args, c.stderr, func(fs *flag.FlagSet) {
		shared.register(fs)
		fs.StringVar(&agentID, "agent", "", "agent id (required)")
		fs.StringVar(&to, "to", "", "callee number (required)")
		fs.StringVar(&from, "from", "", "caller number")
		fs.StringVar(&direction, "direction", string(invorto.DirectionOutbound), "call direction (inbound|outbound)")
		fs.BoolVar(&noRecording, "no-recording", false, "disable recording")
		fs.BoolVar(&noTranscription, "no-transcription", false, "disable transcription")
	})
	if err != nil {
		return err
	}

	opts := invorto.NewCallOptions(agentID, invorto.FormatPhoneNumber(to, env.CountryCode))
	opts.Direction = invorto.Direction(direction)
	if from != "" {
		formatted := invorto.FormatPhoneNumber(from, env.CountryCode)
		opts.From = &formatted
	}
	if noRecording {
		rec := false
		opts.Recording = &rec
	}
	if noTranscription {
		tr := false
		opts.Transcription = &tr
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	ack, err := client.CreateCall(ctx, opts)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	out.Success("call accepted")
	pairs := make([][2]string, 0, len(ack))
	for _, key := range []string{"id", "status", "agent_id"} {
		if v, ok := ack[key]; ok {
			pairs = append(pairs, [2]string{key, fmt.Sprint(v)})
		}
	}
	out.KV(pairs)
	return nil
}

func (c *CallsCommand) status(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("calls status", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	if len(rest) < 2 {
		return fmt.Errorf("usage: calls status <call-id> <status>")
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	call, err := client.UpdateCallStatus(ctx, rest[0], invorto.CallStatus(rest[1]), nil)
	if err != nil {
		return err
	}
	newConsole(c.stdout, c.stderr).Success("call %s is now %s", call.ID, call.Status)
	return nil
}

func (c *CallsCommand) timeline(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("calls timeline", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	callID, err := requireArg(rest, "call id")
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	events, err := client.GetCallTimeline(ctx, callID)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	if len(events) == 0 {
		out.Info("no timeline events for call %s", callID)
		return nil
	}
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, []string{event.Timestamp, event.Kind, event.ID})
	}
	out.Table([]string{"TIMESTAMP", "KIND", "EVENT"}, rows)
	return nil
}

func (c *CallsCommand) artifacts(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("calls artifacts", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	callID, err := requireArg(rest, "call id")
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	artifacts, err := client.GetCallArtifacts(ctx, callID)
	if err != nil {
		return err
	}

	newConsole(c.stdout, c.stderr).KV([][2]string{
		{"recording", strOrDash(artifacts.Recording)},
		{"transcription", strOrDash(artifacts.Transcription)},
		{"summary", strOrDash(artifacts.Summary)},
	})
	return nil
}
