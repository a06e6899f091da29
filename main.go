package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"fjacquet/bank-budget/cmd/convert"
	"fjacquet/bank-budget/cmd/mappings"
	"fjacquet/bank-budget/cmd/preview"
	"fjacquet/bank-budget/cmd/root"
	"fjacquet/bank-budget/internal/config"
)

func init() {
	// Environment first: config and the AI key may come from .env
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(preview.Cmd)
	root.Cmd.AddCommand(mappings.Cmd)
}

// loadEnvSilently loads .env from the working directory or its parent.
// Nothing is logged: the logger is configured later from the loaded values.
func loadEnvSilently() {
	for _, path := range []string{".env", filepath.Join("..", ".env")} {
		if loaded, _ := config.LoadEnv(path); loaded {
			return
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
