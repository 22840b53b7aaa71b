package main

import (
	"fmt"
	"os"

	"goTableDB/internal/cli"
	"goTableDB/internal/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPrefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
