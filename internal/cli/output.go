package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/domain"
)

// Códigos de salida de los subcomandos.
const (
	ExitSuccess      = 0 // ejecución correcta
	ExitFailure      = 1 // fallo de verificación (libro inconsistente, stock insuficiente)
	ExitCommandError = 2 // error de comando (base inexistente, argumentos inválidos)
)

// ExitError error con código de salida propio.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError crea un ExitError con código y mensaje.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError envuelve un error existente con un código de salida.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extrae el código de salida de un error. Si no es un ExitError
// devuelve ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// wrapDomainError asigna el código de salida según el rechazo: los rechazos
// del dominio (lote desconocido, stock insuficiente, libro corrupto) salen
// con 1; la entrada malformada y los errores de base con 2.
func wrapDomainError(message string, err error) *ExitError {
	code := ExitCommandError
	switch {
	case errors.Is(err, domain.ErrUnknownUnit),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrLedgerCorrupt):
		code = ExitFailure
	}
	return WrapExitError(code, message, err)
}

// CLIResponse envoltorio estándar de la salida JSON.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" | "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError detalle de error en la salida JSON.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// printJSON escribe la respuesta JSON indentada en la salida del comando.
func printJSON(cmd *cobra.Command, resp CLIResponse) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// printUnitText muestra una estiba en formato legible.
func printUnitText(w io.Writer, u dto.UnitResponse) {
	deadline := "—"
	if u.Deadline != "" {
		deadline = u.Deadline
	}
	fmt.Fprintf(w, "Estiba:       %s\n", u.UnitID)
	fmt.Fprintf(w, "Producto:     %s\n", u.Label)
	fmt.Fprintf(w, "Empresa:      %s\n", u.Company)
	fmt.Fprintf(w, "Cantidad:     %d\n", u.Quantity)
	fmt.Fprintf(w, "Nivel:        %s\n", u.Level)
	fmt.Fprintf(w, "Estado:       %s\n", u.Status)
	fmt.Fprintf(w, "Fecha límite: %s\n", deadline)
	fmt.Fprintf(w, "Actualizada:  %s\n", u.LastUpdated.Format("2006-01-02 15:04:05"))
}

// printLogText muestra una fila del libro en una sola línea.
func printLogText(w io.Writer, e dto.TransactionLogResponse) {
	fmt.Fprintf(w, "#%-5d %s  %-14s %6d  %d → %d\n",
		e.LogID,
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.Operation,
		e.QuantityChange,
		e.PreviousQuantity,
		e.NewQuantity,
	)
}
