package dto

import (
	"time"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// Formato de fecha límite aceptado en requests (solo día, sin hora).
const deadlineLayout = "2006-01-02"

// RegisterUnitRequest body para POST /api/units.
type RegisterUnitRequest struct {
	Label           string `json:"label"`
	Company         string `json:"company"`
	Level           string `json:"level,omitempty"`
	Deadline        string `json:"deadline,omitempty"` // "YYYY-MM-DD"
	InitialQuantity int64  `json:"initial_quantity"`
}

// ParseDeadline interpreta la fecha límite; vacía significa sin fecha.
func (r RegisterUnitRequest) ParseDeadline() (*time.Time, bool) {
	if r.Deadline == "" {
		return nil, true
	}
	d, err := time.Parse(deadlineLayout, r.Deadline)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// UnitResponse representación pública de una estiba.
type UnitResponse struct {
	UnitID      string    `json:"unit_id"`
	Label       string    `json:"label"`
	Company     string    `json:"company,omitempty"`
	Quantity    int64     `json:"quantity"`
	Level       string    `json:"level"`
	Status      string    `json:"status"`
	Deadline    string    `json:"deadline,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUnitResponse mapea la entidad a su representación pública.
func NewUnitResponse(u *entity.Unit) UnitResponse {
	resp := UnitResponse{
		UnitID:      u.UnitID,
		Label:       u.Label,
		Company:     u.Company,
		Quantity:    u.Quantity,
		Level:       u.Level,
		Status:      u.Status,
		LastUpdated: u.LastUpdated,
		CreatedAt:   u.CreatedAt,
	}
	if u.Deadline != nil {
		resp.Deadline = u.Deadline.Format(deadlineLayout)
	}
	return resp
}

// NewUnitResponses mapea un listado completo.
func NewUnitResponses(units []*entity.Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, NewUnitResponse(u))
	}
	return out
}

// RegisterUnitResponse respuesta del alta: la estiba y su token en PNG
// (base64 en JSON).
type RegisterUnitResponse struct {
	Unit     UnitResponse `json:"unit"`
	TokenPNG []byte       `json:"token_png"`
}

// UnitListResponse respuesta de listados de estibas.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
