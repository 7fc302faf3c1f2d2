package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Pallets-api/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		// Los subcomandos silencian el error; aquí se imprime una sola vez
		// y se traduce al código de salida.
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
