// Package sqlite implementa el Store del libro mayor sobre SQLite. Es el
// backend del CLI y de despliegues de una sola máquina: un archivo local,
// WAL para lecturas concurrentes y un único escritor para serializar las
// transacciones del motor.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// Versión del esquema:
// 1 - units + transaction_log con índices.
const currentSchemaVersion = 1

// Store encapsula la conexión SQLite ya configurada.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y la deja lista: pragmas, un solo
// escritor y esquema aplicado. Usar ":memory:" en pruebas.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar base: %w", err)
	}

	// SQLite admite un solo escritor; una única conexión evita SQLITE_BUSY
	// y de paso serializa las transacciones del motor.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB expone la conexión para construir repositorios fuera de transacción.
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// applySchema aplica el esquema embebido una sola vez, con user_version como
// registro de versión.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("leer user_version: %w", err)
	}
	if version >= currentSchemaVersion {
		return nil
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("crear tablas: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("fijar user_version: %w", err)
	}
	return nil
}
