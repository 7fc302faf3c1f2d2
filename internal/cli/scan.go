package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// ScanOptions flags del comando scan.
type ScanOptions struct {
	*RootOptions
	Op string
}

// NewScanCommand crea el comando scan.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <archivo>",
		Short: "Procesar el texto leído de un token QR",
		Long: `Lee el texto que emitió el lector (desde un archivo, o "-" para stdin),
decodifica la carga y consulta la estiba. Con --op aplica además la entrada
o salida con la cantidad de la carga: una entrada sobre un lote desconocido
lo da de alta; una salida sobre un lote desconocido falla.

Códigos de salida:
  0 - escaneo procesado
  1 - rechazo del dominio (lote desconocido en salida, stock insuficiente)
  2 - token ilegible o error de base

Ejemplos:
  palletctl scan token.txt
  cat token.txt | palletctl scan - --op entry
  palletctl scan token.txt --op exit`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Op, "op", "", "operación a aplicar (entry|exit); vacío solo consulta")

	return cmd
}

func runScan(opts *ScanOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()

	raw, err := readTokenData(path, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo leer el token", err)
	}

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	// Solo consulta
	if opts.Op == "" {
		payload, unit, err := app.scan.Lookup(ctx, raw)
		if err != nil {
			return wrapDomainError("no se pudo procesar el escaneo", err)
		}

		out := dto.ScanResponse{
			Payload:    dto.NewTokenPayloadResponse(payload),
			Registered: unit != nil,
		}
		if unit != nil {
			resp := dto.NewUnitResponse(unit)
			out.Unit = &resp
		}
		if opts.Format == "json" {
			return printJSON(cmd, CLIResponse{Status: "ok", Data: out})
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Carga leída:  %s (%s, cantidad %d)\n", payload.UnitID, payload.Label, payload.Quantity)
		if unit == nil {
			fmt.Fprintln(w, "El lote aún no está registrado; una entrada lo daría de alta.")
			return nil
		}
		printUnitText(w, *out.Unit)
		return nil
	}

	// Entrada o salida en un solo paso
	unit, err := app.scan.Process(ctx, raw, opts.Op)
	if err != nil {
		return wrapDomainError("no se pudo aplicar el movimiento", err)
	}

	resp := dto.NewUnitResponse(unit)
	if opts.Format == "json" {
		return printJSON(cmd, CLIResponse{Status: "ok", Data: resp})
	}

	w := cmd.OutOrStdout()
	verb := "Entrada aplicada"
	if opts.Op == entity.OpExit {
		verb = "Salida aplicada"
	}
	fmt.Fprintf(w, "✓ %s\n", verb)
	printUnitText(w, resp)
	return nil
}

// readTokenData lee el contenido del token desde un archivo o stdin ("-").
func readTokenData(path string, cmd *cobra.Command) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
