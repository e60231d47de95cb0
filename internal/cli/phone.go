package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/invorto/invorto-go/internal/config"
	"github.com/invorto/invorto-go/pkg/invorto"
)

// PhoneCommand exposes the client's phone-number utilities.
type PhoneCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// NewPhoneCommand constructs a phone command.
func NewPhoneCommand(stdout, stderr io.Writer) *PhoneCommand {
	return &PhoneCommand{stdout: stdout, stderr: stderr}
}

func (c *PhoneCommand) Name() string {
	return "phone"
}

func (c *PhoneCommand) Summary() string {
	return "Validate or format a phone number (validate|format)"
}

func (c *PhoneCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *PhoneCommand) Run(_ context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: phone <validate|format> <number>")
	}

	out := newConsole(c.stdout, c.stderr)
	switch args[0] {
	case "validate":
		if invorto.ValidatePhoneNumber(args[1]) {
			out.Success("%s is a valid phone number", args[1])
			return nil
		}
		out.Error("%s is not a valid phone number", args[1])
		return newSilentExitError(1)
	case "format":
		env, err := config.Load()
		if err != nil {
			return err
		}
		out.RawLine("%s", invorto.FormatPhoneNumber(args[1], env.CountryCode))
		return nil
	default:
		return fmt.Errorf("unknown phone action %q", args[0])
	}
}
