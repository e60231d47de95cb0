package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/invorto/invorto-go/internal/cli"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		var silent bool
		if s, ok := err.(interface{ Silent() bool }); ok {
			silent = s.Silent()
		}
		if !silent {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		code := 1
		if c, ok := err.(interface{ ExitCode() int }); ok {
			code = c.ExitCode()
		}
		os.Exit(code)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	app := cli.New(os.Stdout, os.Stderr)

	return app.Execute(context.Background(), args)
}
