package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// LogsOptions flags del comando logs.
type LogsOptions struct {
	*RootOptions
	Limit int
}

// NewLogsCommand crea el comando logs.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "logs [unit-id]",
		Short: "Mostrar el libro de movimientos",
		Long: `Sin argumentos muestra los últimos movimientos del sistema, el más nuevo
primero. Con un identificador muestra el historial completo de esa estiba
en orden de anexado.

Ejemplos:
  palletctl logs
  palletctl logs --limit 50
  palletctl logs ACM-CAJ-260824-X7Q2`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID := ""
			if len(args) == 1 {
				unitID = args[0]
			}
			return runLogs(opts, unitID, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "cantidad de filas (solo sin unit-id)")

	return cmd
}

func runLogs(opts *LogsOptions, unitID string, cmd *cobra.Command) error {
	ctx := context.Background()

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	w := cmd.OutOrStdout()

	// Historial de una estiba
	if unitID != "" {
		history, err := app.reports.UnitHistory(ctx, unitID)
		if err != nil {
			return wrapDomainError("no se pudo consultar el historial", err)
		}
		if opts.Format == "json" {
			return printJSON(cmd, CLIResponse{Status: "ok", Data: history})
		}

		printUnitText(w, history.Unit)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Libro (%d movimientos):\n", len(history.Logs))
		for _, e := range history.Logs {
			printLogText(w, e)
		}
		return nil
	}

	// Últimos movimientos del sistema
	logs, err := app.reports.RecentTransactions(ctx, opts.Limit)
	if err != nil {
		return wrapDomainError("no se pudo consultar el libro", err)
	}
	if opts.Format == "json" {
		return printJSON(cmd, CLIResponse{Status: "ok", Data: logs})
	}

	if len(logs) == 0 {
		fmt.Fprintln(w, "El libro está vacío.")
		return nil
	}
	fmt.Fprintf(w, "Últimos %d movimientos:\n", len(logs))
	for _, e := range logs {
		fmt.Fprintf(w, "%-22s ", e.UnitID)
		printLogText(w, e)
	}
	return nil
}
