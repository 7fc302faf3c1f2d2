package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
)

// ApplyOptions flags del comando apply.
type ApplyOptions struct {
	*RootOptions
	Op       string
	Quantity int64
	Level    string
	Status   string
	Label    string
}

// NewApplyCommand crea el comando apply.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <unit-id>",
		Short: "Aplicar un movimiento explícito a una estiba",
		Long: `Aplica un movimiento del libro sin pasar por el escaneo: entry, exit,
level_change, status_change o stock_adjust. Valida, muta y anexa la fila al
libro en una sola transacción.

Códigos de salida:
  0 - movimiento aplicado
  1 - rechazo del dominio (lote desconocido, stock insuficiente, fuera de rango)
  2 - operación o argumentos inválidos

Ejemplos:
  palletctl apply ACM-CAJ-260824-X7Q2 --op entry --quantity 20
  palletctl apply ACM-CAJ-260824-X7Q2 --op exit --quantity 70
  palletctl apply ACM-CAJ-260824-X7Q2 --op level_change --level Finished
  palletctl apply ACM-CAJ-260824-X7Q2 --op stock_adjust --quantity -5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Op, "op", "", "operación (requerido)")
	_ = cmd.MarkFlagRequired("op")
	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 0, "cantidad (entry/exit/stock_adjust)")
	cmd.Flags().StringVar(&opts.Level, "level", "", "nivel destino (level_change)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "estado destino (status_change)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "producto, si una entrada da de alta el lote")

	return cmd
}

func runApply(opts *ApplyOptions, unitID string, cmd *cobra.Command) error {
	ctx := context.Background()

	app, err := openApp(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la base", err)
	}
	defer app.Close()

	unit, err := app.apply.Apply(ctx, appledger.TransactionInputDTO{
		UnitID:    unitID,
		Operation: opts.Op,
		Quantity:  opts.Quantity,
		Level:     opts.Level,
		Status:    opts.Status,
		Label:     opts.Label,
	})
	if err != nil {
		return wrapDomainError("no se pudo aplicar el movimiento", err)
	}

	resp := dto.NewUnitResponse(unit)
	if opts.Format == "json" {
		return printJSON(cmd, CLIResponse{Status: "ok", Data: resp})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Movimiento %s aplicado\n", opts.Op)
	printUnitText(w, resp)
	return nil
}
