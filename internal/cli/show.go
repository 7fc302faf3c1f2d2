package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ShowOptions flags del comando show.
type ShowOptions struct {
	*RootOptions
	TokenOut string
	LabelOut string
}

// NewShowCommand crea el comando show.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <unit-id>",
		Short: "Mostrar el estado actual de una estiba",
		Long: `Muestra el estado actual de una estiba. Con --token-out regenera el token
QR con la cantidad vigente; con --label-out produce la etiqueta PDF.

Ejemplos:
  palletctl show ACM-CAJ-260824-X7Q2
  palletctl show ACM-CAJ-260824-X7Q2 --token-out token.png --label-out etiqueta.pdf`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.TokenOut, "token-out", "", "archivo donde guardar el token PNG")
	cmd.Flags().StringVar(&opts.LabelOut, "label-out", "", "archivo donde guardar la etiqueta PDF")

	return cmd
}

func runShow(opts *ShowOptions, unitID string, cmd *cobra.Command) error {
	ctx := context.Background()

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	unit, err := app.reports.GetUnit(ctx, unitID)
	if err != nil {
		return wrapDomainError("no se pudo consultar la estiba", err)
	}

	if opts.TokenOut != "" {
		img, err := app.labels.TokenPNG(ctx, unitID)
		if err != nil {
			return wrapDomainError("no se pudo generar el token", err)
		}
		if err := os.WriteFile(opts.TokenOut, img, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo guardar el token", err)
		}
	}
	if opts.LabelOut != "" {
		doc, err := app.labels.LabelPDF(ctx, unitID)
		if err != nil {
			return wrapDomainError("no se pudo generar la etiqueta", err)
		}
		if err := os.WriteFile(opts.LabelOut, doc, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo guardar la etiqueta", err)
		}
	}

	if opts.Format == "json" {
		return printJSON(cmd, CLIResponse{Status: "ok", Data: unit})
	}

	w := cmd.OutOrStdout()
	printUnitText(w, *unit)
	if opts.TokenOut != "" {
		fmt.Fprintf(w, "Token QR:     %s\n", opts.TokenOut)
	}
	if opts.LabelOut != "" {
		fmt.Fprintf(w, "Etiqueta:     %s\n", opts.LabelOut)
	}
	return nil
}
