package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/pkg/invorto"
)

// AgentsCommand manages platform agents: list, get, create, update, delete.
type AgentsCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewAgentsCommand constructs an agents command.
func NewAgentsCommand(stdout, stderr io.Writer) *AgentsCommand {
	return &AgentsCommand{stdout: stdout, stderr: stderr}
}

func (c *AgentsCommand) Name() string {
	return "agents"
}

func (c *AgentsCommand) Summary() string {
	return "Manage AI agents (list|get|create|update|delete)"
}

func (c *AgentsCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *AgentsCommand) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agents <list|get|create|update|delete> [flags]")
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
	case "update":
		return c.update(ctx, env, args[1:])
	case "delete":
		return c.delete(ctx, env, args[1:])
	default:
		return fmt.Errorf("unknown agents action %q", args[0])
	}
}

func (c *AgentsCommand) list(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	opts := invorto.NewListOptions()
	_, err := parseAction("agents list", args, c.stderr, func(fs *flag.FlagSet) {
		shared.register(fs)
		fs.IntVar(&opts.Page, "page", opts.Page, "page number")
		fs.IntVar(&opts.Limit, "limit", opts.Limit, "page size")
		fs.StringVar(&opts.Search, "search", "", "search term")
		fs.StringVar(&opts.Status, "status", "", "filter by status")
		fs.StringVar(&opts.SortBy, "sort", "", "sort field")
		fs.StringVar(&opts.SortOrder, "order", opts.SortOrder, "sort order (asc|desc)")
	})
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	page, err := client.ListAgents(ctx, &opts)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	rows := make([][]string, 0, len(page.Agents))
	for _, agent := range page.Agents {
		rows = append(rows, []string{agent.ID, agent.Name, string(agent.Status), agent.TenantID, agent.UpdatedAt})
	}
	out.Table([]string{"ID", "NAME", "STATUS", "TENANT", "UPDATED"}, rows)
	if line := paginationLine(page.Pagination); line != "" {
		out.Info("%s", line)
	}
	return nil
}

func (c *AgentsCommand) get(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("agents get", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	agentID, err := requireArg(rest, "agent id")
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	agent, err := client.GetAgent(ctx, agentID)
	if err != nil {
		return err
	}
	c.printAgent(agent)
	return nil
}

func (c *AgentsCommand) create(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	var file string
	_, err := parseAction("agents create", args, c.stderr, func(fs *flag.FlagSet) {
		shared.register(fs)
		fs.StringVar(&file, "f", "", "agent definition file (YAML)")
	})
	if err != nil {
		return err
	}
	if file == "" {
		return fmt.Errorf("agents create requires -f <agent.yaml>")
	}

	cfg, err := loadAgentConfig(file)
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	agent, err := client.CreateAgent(ctx, cfg)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	out.Success("created agent %s", agent.ID)
	c.printAgent(agent)
	return nil
}

func (c *AgentsCommand) update(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	var file string
	rest, err := parseAction("agents update", args, c.stderr, func(fs *flag.FlagSet) {
		shared.register(fs)
		fs.StringVar(&file, "f", "", "patch file (YAML mapping of fields to update)")
	})
	if err != nil {
		return err
	}
	agentID, err := requireArg(rest, "agent id")
	if err != nil {
		return err
	}
	if file == "" {
		return fmt.Errorf("agents update requires -f <patch.yaml>")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read patch file: %w", err)
	}
	var updates map[string]any
	if err := yaml.Unmarshal(data, &updates); err != nil {
		return fmt.Errorf("parse patch file: %w", err)
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	agent, err := client.UpdateAgent(ctx, agentID, updates)
	if err != nil {
		return err
	}

	out := newConsole(c.stdout, c.stderr)
	out.Success("updated agent %s", agent.ID)
	c.printAgent(agent)
	return nil
}

func (c *AgentsCommand) delete(ctx context.Context, env config.Env, args []string) error {
	var shared sharedFlags
	rest, err := parseAction("agents delete", args, c.stderr, shared.register)
	if err != nil {
		return err
	}
	agentID, err := requireArg(rest, "agent id")
	if err != nil {
		return err
	}

	client, err := newClient(env, shared.profile)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.DeleteAgent(ctx, agentID); err != nil {
		return err
	}
	newConsole(c.stdout, c.stderr).Success("deleted agent %s", agentID)
	return nil
}

func (c *AgentsCommand) printAgent(agent *invorto.Agent) {
	out := newConsole(c.stdout, c.stderr)
	pairs := [][2]string{
		{"id", agent.ID},
		{"name", agent.Name},
		{"status", string(agent.Status)},
		{"tenant", agent.TenantID},
		{"created", agent.CreatedAt},
		{"updated", agent.UpdatedAt},
		{"prompt", agent.Config.Prompt},
	}
	if agent.Config.Model != nil {
		pairs = append(pairs, [2]string{"model", *agent.Config.Model})
	}
	if agent.Config.Voice != nil {
		pairs = append(pairs, [2]string{"voice", *agent.Config.Voice})
	}
	if agent.Config.Locale != nil {
		pairs = append(pairs, [2]string{"locale", *agent.Config.Locale})
	}
	if agent.Config.Temperature != nil {
		pairs = append(pairs, [2]string{"temperature", strconv.FormatFloat(*agent.Config.Temperature, 'f', -1, 64)})
	}
	out.KV(pairs)
}

// agentFile is the YAML shape accepted by `agents create -f`.
type agentFile struct {
	Name         string           `yaml:"name"`
	Prompt       string           `yaml:"prompt"`
	Voice        *string          `yaml:"voice"`
	Locale       *string          `yaml:"locale"`
	Temperature  *float64         `yaml:"temperature"`
	Model        *string          `yaml:"model"`
	MaxTokens    *int             `yaml:"max_tokens"`
	SystemPrompt *string          `yaml:"system_prompt"`
	Tools        []map[string]any `yaml:"tools"`
	Metadata     map[string]any   `yaml:"metadata"`
	Webhook      *struct {
		URL     string            `yaml:"url"`
		Events  []string          `yaml:"events"`
		Secret  *string           `yaml:"secret"`
		Headers map[string]string `yaml:"headers"`
	} `yaml:"webhook"`
}

func loadAgentConfig(path string) (invorto.AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return invorto.AgentConfig{}, fmt.Errorf("read agent file: %w", err)
	}

	var def agentFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return invorto.AgentConfig{}, fmt.Errorf("parse agent file: %w", err)
	}

	cfg := invorto.NewAgentConfig(def.Name, def.Prompt)
	if def.Voice != nil {
		cfg.Voice = def.Voice
	}
	if def.Locale != nil {
		cfg.Locale = def.Locale
	}
	if def.Temperature != nil {
		cfg.Temperature = def.Temperature
	}
	if def.Model != nil {
		cfg.Model = def.Model
	}
	if def.MaxTokens != nil {
		cfg.MaxTokens = def.MaxTokens
	}
	if def.SystemPrompt != nil {
		cfg.SystemPrompt = def.SystemPrompt
	}
	cfg.Tools = def.Tools
	cfg.Metadata = def.Metadata
	if def.Webhook != nil {
		cfg.Webhook = &invorto.WebhookConfig{
			URL:     def.Webhook.URL,
			Events:  def.Webhook.Events,
			Secret:  def.Webhook.Secret,
			Headers: def.Webhook.Headers,
		}
	}

	if err := cfg.Validate(); err != nil {
		return invorto.AgentConfig{}, err
	}
	return cfg, nil
}
