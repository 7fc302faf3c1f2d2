package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
)

// ReportOptions flags del comando report.
type ReportOptions struct {
	*RootOptions
	Status        string
	Level         string
	CriticalBelow int64
	DueWithinDays int
	OrderBy       string
	CSV           bool
	PDF           bool
	Out           string
}

// NewReportCommand crea el comando report.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporte filtrado de estibas",
		Long: `Lista las estibas que cumplen los filtros, sin paginar. Con --csv exporta
el listado en CSV (a stdout, o al archivo de --out) y con --pdf genera el
reporte tabulado imprimible (requiere --out).

Ejemplos:
  palletctl report
  palletctl report --status "In Progress" --order-by deadline
  palletctl report --critical-below 20 --order-by quantity
  palletctl report --csv --out estibas.csv
  palletctl report --pdf --out estibas.pdf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filtrar por estado")
	cmd.Flags().StringVar(&opts.Level, "level", "", "filtrar por nivel")
	cmd.Flags().Int64Var(&opts.CriticalBelow, "critical-below", 0, "stock crítico: quantity < N")
	cmd.Flags().IntVar(&opts.DueWithinDays, "due-within-days", 0, "fecha límite dentro de N días")
	cmd.Flags().StringVar(&opts.OrderBy, "order-by", "", "orden: deadline | last_updated | quantity")
	cmd.Flags().BoolVar(&opts.CSV, "csv", false, "exportar en CSV")
	cmd.Flags().BoolVar(&opts.PDF, "pdf", false, "exportar el reporte tabulado en PDF")
	cmd.Flags().StringVar(&opts.Out, "out", "", "archivo de salida de la exportación (CSV por defecto a stdout)")
	cmd.MarkFlagsMutuallyExclusive("csv", "pdf")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	query := dto.ReportQuery{
		Status:        opts.Status,
		Level:         opts.Level,
		CriticalBelow: opts.CriticalBelow,
		DueWithinDays: opts.DueWithinDays,
		OrderBy:       opts.OrderBy,
	}

	if opts.PDF {
		if opts.Out == "" {
			return NewExitError(ExitCommandError, "la exportación PDF necesita --out")
		}
		doc, _, err := app.pdfReports.UnitsPDF(ctx, query)
		if err != nil {
			return wrapDomainError("no se pudo generar el reporte PDF", err)
		}
		if err := os.WriteFile(opts.Out, doc, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo guardar el PDF", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Reporte PDF exportado en %s\n", opts.Out)
		return nil
	}

	units, err := app.reports.ListUnits(ctx, query)
	if err != nil {
		return wrapDomainError("no se pudo generar el reporte", err)
	}

	if opts.CSV {
		var buf bytes.Buffer
		if err := reports.WriteUnitsCSV(&buf, units); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo exportar el CSV", err)
		}
		if opts.Out != "" {
			if err := os.WriteFile(opts.Out, buf.Bytes(), 0o644); err != nil {
				return WrapExitError(ExitCommandError, "no se pudo guardar el CSV", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Reporte exportado en %s (%d estibas)\n", opts.Out, len(units))
			return nil
		}
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if opts.Format == "json" {
		return printJSON(cmd, CLIResponse{Status: "ok", Data: units})
	}

	w := cmd.OutOrStdout()
	if len(units) == 0 {
		fmt.Fprintln(w, "Sin estibas que cumplan el filtro.")
		return nil
	}
	fmt.Fprintf(w, "%-22s %-18s %8s  %-10s %-12s %s\n",
		"ESTIBA", "PRODUCTO", "CANTIDAD", "NIVEL", "ESTADO", "FECHA LÍMITE")
	for _, u := range units {
		deadline := "—"
		if u.Deadline != "" {
			deadline = u.Deadline
		}
		fmt.Fprintf(w, "%-22s %-18s %8d  %-10s %-12s %s\n",
			u.UnitID, u.Label, u.Quantity, u.Level, u.Status, deadline)
	}
	fmt.Fprintf(w, "\nTotal: %d estibas\n", len(units))
	return nil
}
