package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
)

// VerifyOptions flags del comando verify.
type VerifyOptions struct {
	*RootOptions
}

// NewVerifyCommand crea el comando verify.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [unit-id]",
		Short: "Conciliar el libro por reproducción",
		Long: `Reproduce el libro de cada estiba desde su primera fila y compara el
resultado con la cantidad almacenada. Sin argumentos concilia el sistema
completo; con un identificador, solo esa estiba.

Códigos de salida:
  0 - el libro concilia
  1 - inconsistencia detectada (el libro no se repara solo)
  2 - error de comando

Ejemplos:
  palletctl verify
  palletctl verify ACM-CAJ-260824-X7Q2
  palletctl verify --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID := ""
			if len(args) == 1 {
				unitID = args[0]
			}
			return runVerify(opts, unitID, cmd)
		},
	}

	return cmd
}

func runVerify(opts *VerifyOptions, unitID string, cmd *cobra.Command) error {
	ctx := context.Background()

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	// Una sola estiba
	if unitID != "" {
		result, err := app.reports.VerifyUnit(ctx, unitID)
		if err != nil {
			return wrapDomainError("no se pudo conciliar la estiba", err)
		}
		report := dto.VerifyReportResponse{
			Consistent: result.Consistent,
			Checked:    1,
			Results:    []dto.VerifyResultResponse{*result},
		}
		return outputVerify(opts, cmd, report)
	}

	// Sistema completo
	report, err := app.reports.VerifyAll(ctx)
	if err != nil {
		return wrapDomainError("no se pudo conciliar el libro", err)
	}
	return outputVerify(opts, cmd, *report)
}

func outputVerify(opts *VerifyOptions, cmd *cobra.Command, report dto.VerifyReportResponse) error {
	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: report}
		if !report.Consistent {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_LEDGER", Message: "el libro no concilia"}
		}
		if err := printJSON(cmd, resp); err != nil {
			return err
		}
		if !report.Consistent {
			return NewExitError(ExitFailure, "el libro no concilia")
		}
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Conciliación: %d estiba(s)\n\n", report.Checked)

	for _, r := range report.Results {
		status := "✓"
		if !r.Consistent {
			status = "✗"
		}
		fmt.Fprintf(w, "%s %s  almacenado=%d  reproducido=%d\n",
			status, r.UnitID, r.StoredQuantity, r.ReplayedQuantity)
		if !r.Consistent && r.Detail != "" {
			fmt.Fprintf(w, "  Detalle: %s\n", r.Detail)
		}
	}

	fmt.Fprintln(w)
	if report.Consistent {
		fmt.Fprintln(w, "✓ El libro concilia con el estado almacenado")
		return nil
	}
	fmt.Fprintln(w, "✗ El libro NO concilia; revise las estibas marcadas")
	return NewExitError(ExitFailure, "el libro no concilia")
}
