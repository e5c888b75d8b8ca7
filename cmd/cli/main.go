package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/cellan/internal/app"
	"github.com/vk/cellan/internal/cli"
	"github.com/vk/cellan/internal/hcl"
)

// exitInvalidModel is the exit code for a model that was analysed but cannot
// be used.
const exitInvalidModel = 3

// main is the entrypoint for the cellan application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	os.Exit(exitCode(run(os.Stdout, os.Stderr, os.Args[1:])))
}

// exitCode maps the error returned by run to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		return exitErr.Code
	}
	if errors.Is(err, app.ErrInvalidModel) {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidModel
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl.NewLoader()
	cellanApp := app.NewApp(outW, logW, appConfig, loader)

	_, err = cellanApp.Run(context.Background())
	return err
}
