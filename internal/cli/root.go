// Package cli implementa la herramienta de línea de comandos del libro de
// estibas, pensada para operar sobre una base SQLite local sin levantar la
// API.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions flags globales de todos los subcomandos.
type RootOptions struct {
	Verbose  bool
	Format   string // "text" | "json"
	Database string // ruta de la base SQLite
}

// ValidFormats formatos de salida admitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz de palletctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "palletctl",
		Short: "Libro mayor de estibas",
		Long: `palletctl administra el libro mayor de estibas sobre una base SQLite local:
alta con token QR, movimientos de entrada/salida, reportes y conciliación
del libro por reproducción.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("formato %q inválido: debe ser uno de %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Flags globales
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "salida detallada")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "pallets.db", "ruta de la base SQLite")

	// Subcomandos
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
