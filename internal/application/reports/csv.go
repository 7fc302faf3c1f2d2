package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
)

// Encabezado estable del CSV; el orden importa para quien lo importa en hojas
// de cálculo.
var csvHeader = []string{"unit_id", "label", "company", "quantity", "level", "status", "deadline", "last_updated"}

// WriteUnitsCSV vuelca el listado en formato CSV. Las fechas van como
// "YYYY-MM-DD HH:MM:SS" y la fecha límite como "YYYY-MM-DD" (vacía si no hay).
func WriteUnitsCSV(w io.Writer, units []dto.UnitResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, u := range units {
		record := []string{
			u.UnitID,
			u.Label,
			u.Company,
			strconv.FormatInt(u.Quantity, 10),
			u.Level,
			u.Status,
			u.Deadline,
			u.LastUpdated.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
