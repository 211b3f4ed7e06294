package main

import (
	"fmt"
	"os"

	"focusdeck/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	defer func() {
		_ = app.Close()
	}()
	return cli.NewRootCmd(app).Execute()
}
