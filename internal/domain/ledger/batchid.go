// Package ledger contiene las reglas puras del libro de movimientos:
// generación de identificadores de lote y verificación por replay.
// No depende de infraestructura.
package ledger

import (
	"crypto/rand"
	"fmt"
	"time"
	"unicode"
)

const suffixCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewUnitID genera el identificador de lote con el formato
// {EMPRESA:3}-{PRODUCTO:3}-{aammdd}-{SUFIJO:4}, por ejemplo "ACM-BOX-260824-X7Q2".
// Los prefijos usan los tres primeros caracteres alfanuméricos en mayúscula;
// el sufijo es aleatorio para evitar colisiones entre lotes del mismo día.
func NewUnitID(company, label string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s",
		prefix(company), prefix(label), now.Format("060102"), randomSuffix(4))
}

func prefix(s string) string {
	var runes []rune
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			runes = append(runes, unicode.ToUpper(r))
			if len(runes) == 3 {
				break
			}
		}
	}
	if len(runes) == 0 {
		return "XXX"
	}
	return string(runes)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	// rand.Read sobre crypto/rand no falla en la práctica; si fallara,
	// el sufijo quedaría sesgado pero sigue siendo un ID válido.
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = suffixCharset[int(buf[i])%len(suffixCharset)]
	}
	return string(buf)
}
