package ledger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitIDPattern = regexp.MustCompile(`^[A-Z0-9]{1,3}-[A-Z0-9]{1,3}-\d{6}-[A-Z2-9]{4}$`)

func TestNewUnitID_Formato(t *testing.T) {
	now := time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC)

	id := NewUnitID("Acme Corp", "Cajas Export", now)

	require.Regexp(t, unitIDPattern, id)
	assert.True(t, strings.HasPrefix(id, "ACM-CAJ-260824-"), "id generado: %s", id)
}

func TestNewUnitID_PrefijosSoloAlfanumericos(t *testing.T) {
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// Espacios y signos no cuentan para el prefijo.
	id := NewUnitID("A B C Ltda.", "  ¡caja!", now)

	assert.True(t, strings.HasPrefix(id, "ABC-CAJ-260105-"), "id generado: %s", id)
}

func TestNewUnitID_EmpresaVaciaUsaRelleno(t *testing.T) {
	id := NewUnitID("", "Caja", time.Now())

	assert.True(t, strings.HasPrefix(id, "XXX-CAJ-"), "id generado: %s", id)
}

func TestNewUnitID_SufijosNoSeRepiten(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[NewUnitID("Acme", "Caja", now)] = struct{}{}
	}
	// Con sufijo aleatorio de 4 caracteres sobre 32 símbolos las colisiones
	// son rarísimas; toleramos alguna para que la prueba no sea frágil.
	assert.GreaterOrEqual(t, len(seen), 95)
}
