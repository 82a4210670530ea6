package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/wanderplan/internal/cli"
	"github.com/alexanderramin/wanderplan/internal/llm"
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for the API key during development; missing file is fine.
	_ = godotenv.Load()

	llmCfg := llm.LoadConfig()

	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}

	client, err := llm.NewGeminiClient(context.Background(), llmCfg, observer)
	if err != nil {
		return fmt.Errorf("setting up generation client: %w", err)
	}

	app := &cli.App{
		Planner: planner.NewService(client),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
