package entity

// TokenPayload es el registro que viaja dentro del token escaneable (QR).
// Quantity es la cantidad declarada para la transacción en curso, no el
// acumulado de la estiba.
type TokenPayload struct {
	UnitID   string `json:"unit_id"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
}
