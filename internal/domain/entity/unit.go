package entity

import "time"

// Niveles de producción de una estiba. El paso entre niveles es libre
// (no hay orden forzado Raw → Shipped).
const (
	LevelRaw        = "Raw"
	LevelProcessing = "Processing"
	LevelFinished   = "Finished"
	LevelShipped    = "Shipped"
)

// Estados operativos de una estiba.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusDelayed    = "Delayed"
)

// ValidLevel indica si level pertenece al dominio de niveles conocidos.
func ValidLevel(level string) bool {
	switch level {
	case LevelRaw, LevelProcessing, LevelFinished, LevelShipped:
		return true
	}
	return false
}

// ValidStatus indica si status pertenece al dominio de estados conocidos.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelayed:
		return true
	}
	return false
}

// Unit representa una estiba (lote físico) rastreada por el sistema.
// UnitID es inmutable desde el registro; Quantity solo cambia a través
// del libro de movimientos, nunca por asignación directa.
type Unit struct {
	UnitID      string
	Label       string
	Company     string
	Quantity    int64
	Level       string
	Status      string
	Deadline    *time.Time // fecha límite opcional
	LastUpdated time.Time
	CreatedAt   time.Time
}
