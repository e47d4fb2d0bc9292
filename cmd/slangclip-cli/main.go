package main

import (
	"context"
	"os"

	"slangclip/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultRuntime()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
