// seed puebla la base configurada con estibas de demostración y sus
// movimientos, útil para probar la API, los reportes y el dashboard con
// datos realistas. Todos los movimientos pasan por el motor del libro,
// así la base sembrada concilia (verify sale limpio).
//
// Uso: go run ./cmd/seed
// Respeta la misma configuración que la API (DB_DRIVER, DB_SQLITE_PATH, etc.).
// Cada ejecución agrega un juego nuevo de estibas con identificadores frescos.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/token"
	"github.com/jhoicas/Pallets-api/pkg/config"
)

// demoUnit una estiba de demostración y los movimientos que se le aplican
// tras el alta (UnitID se completa al registrar).
type demoUnit struct {
	label    string
	company  string
	level    string
	deadline *time.Time
	quantity int64
	moves    []appledger.TransactionInputDTO
}

func demoSet() []demoUnit {
	return []demoUnit{
		{
			label: "Cajas de cartón doble pared", company: "ACME", level: entity.LevelRaw,
			deadline: daysFromNow(14), quantity: 100,
			moves: []appledger.TransactionInputDTO{
				{Operation: entity.OpExit, Quantity: 40},
				{Operation: entity.OpStatusChange, Status: entity.StatusInProgress},
			},
		},
		{
			label: "Tablones de pino cepillado", company: "Maderas del Sur", level: entity.LevelProcessing,
			deadline: daysFromNow(30), quantity: 250,
			moves: []appledger.TransactionInputDTO{
				{Operation: entity.OpEntry, Quantity: 50},
				{Operation: entity.OpLevelChange, Level: entity.LevelFinished},
			},
		},
		{
			label: "Pulpa de mango congelada", company: "Frutex", level: entity.LevelRaw,
			deadline: daysFromNow(3), quantity: 80,
			moves: []appledger.TransactionInputDTO{
				{Operation: entity.OpStatusChange, Status: entity.StatusDelayed},
			},
		},
		{
			// Queda con 5 unidades: aparece en el reporte de stock crítico.
			label: "Bobinas de film estirable", company: "Empaques Andinos", level: entity.LevelFinished,
			quantity: 40,
			moves: []appledger.TransactionInputDTO{
				{Operation: entity.OpExit, Quantity: 35},
			},
		},
		{
			label: "Sacos de café pergamino", company: "Cafetal La Loma", level: entity.LevelFinished,
			deadline: daysFromNow(7), quantity: 120,
			moves: []appledger.TransactionInputDTO{
				{Operation: entity.OpExit, Quantity: 120},
				{Operation: entity.OpStatusChange, Status: entity.StatusCompleted},
				{Operation: entity.OpLevelChange, Level: entity.LevelShipped},
			},
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var runner appledger.TxRunner
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.DB.SQLitePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir base sqlite: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		runner = sqlite.NewTxRunner(store)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Aplicar migraciones: %v\n", err)
			os.Exit(1)
		}
		runner = postgres.NewTxRunner(pool)
	}

	registerUC := appledger.NewRegisterUnitUseCase(runner, token.NewCodec(0))
	applyUC := appledger.NewApplyTransactionUseCase(runner)

	units := demoSet()
	for _, d := range units {
		u, _, err := registerUC.Register(ctx, appledger.RegisterInputDTO{
			Label:           d.label,
			Company:         d.company,
			Level:           d.level,
			Deadline:        d.deadline,
			InitialQuantity: d.quantity,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Registrar %q: %v\n", d.label, err)
			os.Exit(1)
		}
		for _, mv := range d.moves {
			mv.UnitID = u.UnitID
			if _, err := applyUC.Apply(ctx, mv); err != nil {
				fmt.Fprintf(os.Stderr, "Movimiento %s sobre %s: %v\n", mv.Operation, u.UnitID, err)
				os.Exit(1)
			}
		}
		fmt.Printf("✓ %-26s %s\n", u.UnitID, d.label)
	}
	fmt.Printf("Listo: %d estibas de demostración en %s.\n", len(units), cfg.DB.Driver)
}

func daysFromNow(days int) *time.Time {
	t := time.Now().AddDate(0, 0, days)
	return &t
}
