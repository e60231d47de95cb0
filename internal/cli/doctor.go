package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/internal/healthcheck"
)

// DoctorCommand performs health checks on the local configuration and the
// connection to the platform.
type DoctorCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewDoctorCommand constructs a doctor command.
func NewDoctorCommand(stdout, stderr io.Writer) *DoctorCommand {
	return &DoctorCommand{stdout: stdout, stderr: stderr}
}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Summary() string {
	return "Check configuration, credentials, and platform connectivity"
}

func (c *DoctorCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *DoctorCommand) Run(ctx context.Context, args []string) error {
	var shared sharedFlags
	if _, err := parseAction("doctor", args, c.stderr, shared.register); err != nil {
		return err
	}

	var errs []error

	fmt.Fprintln(c.stdout, "Performing health checks...")

	env, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration, cannot proceed with checks: %w", err)
	}
	fmt.Fprintln(c.stdout, "  [OK] Configuration loaded")

	if err := healthcheck.CheckConfig(); err != nil {
		fmt.Fprintln(c.stdout, "  [FAIL] Configuration file check")
		errs = append(errs, err)
	} else {
		fmt.Fprintln(c.stdout, "  [OK] Configuration file check")
	}

	if err := healthcheck.CheckCredentials(env, shared.profile); err != nil {
		fmt.Fprintln(c.stdout, "  [FAIL] Credentials check")
		errs = append(errs, err)
	} else {
		fmt.Fprintln(c.stdout, "  [OK] Credentials check")
	}

	if status, err := healthcheck.CheckConnectivity(ctx, env, shared.profile); err != nil {
		fmt.Fprintln(c.stdout, "  [FAIL] Platform connectivity check")
		errs = append(errs, err)
	} else {
		fmt.Fprintf(c.stdout, "  [OK] Platform connectivity (status: %s)\n", status)
	}

	if len(errs) > 0 {
		fmt.Fprintln(c.stderr, "\nHealth checks completed with errors:")
		return errors.Join(errs...)
	}

	fmt.Fprintln(c.stdout, "\nAll health checks passed.")
	return nil
}
