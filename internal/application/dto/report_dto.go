package dto

// ReportQuery filtros de GET /api/reports/units. Los filtros se combinan con
// AND; los campos vacíos no filtran.
type ReportQuery struct {
	Status        string `query:"status"`
	Level         string `query:"level"`
	CriticalBelow int64  `query:"critical_below"`  // stock crítico: quantity < N
	DueWithinDays int    `query:"due_within_days"` // fecha límite dentro de N días
	OrderBy       string `query:"order_by"`        // deadline | last_updated | quantity
	Format        string `query:"format"`          // json (default) | csv
	PageRequest
}

// DashboardSummaryResponse resumen de la pantalla principal: últimas estibas
// tocadas y últimos movimientos del libro.
type DashboardSummaryResponse struct {
	RecentUnits        []UnitResponse           `json:"recent_units"`
	RecentTransactions []TransactionLogResponse `json:"recent_transactions"`
}
