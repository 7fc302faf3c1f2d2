package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
)

// RegisterOptions flags del comando register.
type RegisterOptions struct {
	*RootOptions
	Label    string
	Company  string
	Level    string
	Deadline string
	Quantity int64
	TokenOut string
	LabelOut string
}

// NewRegisterCommand crea el comando register.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Dar de alta una estiba y generar su token QR",
		Long: `Da de alta una estiba: genera el identificador de lote, registra la
cantidad inicial en el libro y produce el token QR.

Códigos de salida:
  0 - estiba registrada
  2 - datos inválidos o error de base

Ejemplos:
  palletctl register --label "Cajas" --company "ACME" --quantity 50
  palletctl register --label "Cajas" --company "ACME" --deadline 2026-09-15 \
      --token-out token.png --label-out etiqueta.pdf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Label, "label", "", "nombre del producto (requerido)")
	_ = cmd.MarkFlagRequired("label")
	cmd.Flags().StringVar(&opts.Company, "company", "", "empresa dueña del lote (requerido)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringVar(&opts.Level, "level", "", "nivel inicial (por defecto Raw)")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "fecha límite YYYY-MM-DD")
	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 0, "cantidad inicial")
	cmd.Flags().StringVar(&opts.TokenOut, "token-out", "", "archivo donde guardar el token PNG")
	cmd.Flags().StringVar(&opts.LabelOut, "label-out", "", "archivo donde guardar la etiqueta PDF")

	return cmd
}

func runRegister(opts *RegisterOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	req := dto.RegisterUnitRequest{Deadline: opts.Deadline}
	deadline, ok := req.ParseDeadline()
	if !ok {
		return NewExitError(ExitCommandError, "deadline debe ser YYYY-MM-DD")
	}

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	unit, tokenPNG, err := app.register.Register(ctx, appledger.RegisterInputDTO{
		Label:           opts.Label,
		Company:         opts.Company,
		Level:           opts.Level,
		Deadline:        deadline,
		InitialQuantity: opts.Quantity,
	})
	if err != nil {
		return wrapDomainError("no se pudo registrar la estiba", err)
	}

	if opts.TokenOut != "" {
		if err := os.WriteFile(opts.TokenOut, tokenPNG, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo guardar el token", err)
		}
	}
	if opts.LabelOut != "" {
		doc, err := app.labels.LabelPDF(ctx, unit.UnitID)
		if err != nil {
			return wrapDomainError("no se pudo generar la etiqueta", err)
		}
		if err := os.WriteFile(opts.LabelOut, doc, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo guardar la etiqueta", err)
		}
	}

	resp := dto.NewUnitResponse(unit)
	if opts.Format == "json" {
		return printJSON(cmd, CLIResponse{Status: "ok", Data: resp})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "✓ Estiba registrada")
	printUnitText(w, resp)
	if opts.TokenOut != "" {
		fmt.Fprintf(w, "Token QR:     %s\n", opts.TokenOut)
	}
	if opts.LabelOut != "" {
		fmt.Fprintf(w, "Etiqueta:     %s\n", opts.LabelOut)
	}
	return nil
}
