package storage

// sqlite.go — histórico de pasadas de detección.
//
// Estrategia:
//   - `passes`: una fila de resumen por pasada (contadores, mejor conviction).
//   - `structure_breaks`: una fila por evento con la proyección escalar
//     completa (la misma forma que exporta el CSV).
//   - `order_blocks`: una fila por bloque con sus campos derivados.
// Los eventos son hechos terminales: solo INSERT, nunca UPDATE.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/structscan/internal/domain"
)

const schema = `
-- Resumen por pasada de detección
CREATE TABLE IF NOT EXISTS passes (
    id              TEXT PRIMARY KEY,
    symbol          TEXT     NOT NULL,
    detected_at     DATETIME NOT NULL,
    breaks          INTEGER  NOT NULL DEFAULT 0,
    confirmed       INTEGER  NOT NULL DEFAULT 0,
    blocks          INTEGER  NOT NULL DEFAULT 0,
    best_conviction REAL     NOT NULL DEFAULT 0
);

-- Una fila por ruptura estructural emitida
CREATE TABLE IF NOT EXISTS structure_breaks (
    pass_id                  TEXT     NOT NULL,
    symbol                   TEXT     NOT NULL,
    dt                       DATETIME NOT NULL,
    break_type               TEXT     NOT NULL,
    direction                TEXT     NOT NULL,
    broken_level             REAL     NOT NULL DEFAULT 0,
    break_price              REAL     NOT NULL DEFAULT 0,
    break_distance           REAL     NOT NULL DEFAULT 0,
    atr_multiple             REAL     NOT NULL DEFAULT 0,
    volume_confirmation      INTEGER  NOT NULL DEFAULT 0,
    time_efficiency          REAL     NOT NULL DEFAULT 0,
    momentum_alignment       INTEGER  NOT NULL DEFAULT 0,
    conviction_score         REAL     NOT NULL DEFAULT 0,
    false_break_probability  REAL     NOT NULL DEFAULT 0,
    follow_through_potential REAL     NOT NULL DEFAULT 0,
    is_confirmed             INTEGER  NOT NULL DEFAULT 0,
    is_failed                INTEGER  NOT NULL DEFAULT 0
);

-- Una fila por order block detectado
CREATE TABLE IF NOT EXISTS order_blocks (
    pass_id   TEXT     NOT NULL,
    symbol    TEXT     NOT NULL,
    formed_at DATETIME NOT NULL,
    bias      TEXT     NOT NULL,
    upper     REAL     NOT NULL DEFAULT 0,
    lower     REAL     NOT NULL DEFAULT 0,
    size      REAL     NOT NULL DEFAULT 0,
    center    REAL     NOT NULL DEFAULT 0,
    volume    REAL     NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_passes_at   ON passes(detected_at DESC);
CREATE INDEX IF NOT EXISTS idx_breaks_dt   ON structure_breaks(dt);
CREATE INDEX IF NOT EXISTS idx_breaks_pass ON structure_breaks(pass_id);
CREATE INDEX IF NOT EXISTS idx_blocks_pass ON order_blocks(pass_id);
`

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el
// schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// SavePass persiste el resumen de la pasada más una fila por evento, todo en
// una transacción. Una pasada sin eventos también se registra: el "no hubo
// nada" es información.
func (s *SQLiteStorage) SavePass(ctx context.Context, pass domain.Pass) error {
	passID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SavePass: begin tx: %w", err)
	}
	defer tx.Rollback()

	confirmed, best := passSummary(pass.Breaks)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO passes (id, symbol, detected_at, breaks, confirmed, blocks, best_conviction)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		passID, pass.Symbol, pass.DetectedAt.UTC(), len(pass.Breaks), confirmed, len(pass.Blocks), best,
	); err != nil {
		return fmt.Errorf("storage.SavePass: insert pass: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO structure_breaks
			(pass_id, symbol, dt, break_type, direction, broken_level, break_price,
			 break_distance, atr_multiple, volume_confirmation, time_efficiency,
			 momentum_alignment, conviction_score, false_break_probability,
			 follow_through_potential, is_confirmed, is_failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SavePass: prepare breaks: %w", err)
	}
	defer stmt.Close()

	for _, sb := range pass.Breaks {
		r := sb.Record()
		if _, err := stmt.ExecContext(ctx,
			passID, r.Symbol, sb.Timestamp.UTC(), r.Kind, r.Direction,
			r.BrokenLevel, r.BreakPrice, r.BreakDistance, r.ATRMultiple,
			r.VolumeConfirmed, r.TimeEfficiency, r.MomentumAligned,
			r.ConvictionScore, r.FalseBreakProbability, r.FollowThroughPotential,
			r.IsConfirmed, r.IsFailed,
		); err != nil {
			return fmt.Errorf("storage.SavePass: insert break %s: %w", r.Timestamp, err)
		}
	}

	blockStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_blocks
			(pass_id, symbol, formed_at, bias, upper, lower, size, center, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SavePass: prepare blocks: %w", err)
	}
	defer blockStmt.Close()

	for _, ob := range pass.Blocks {
		if _, err := blockStmt.ExecContext(ctx,
			passID, ob.Symbol, ob.FormedAt.UTC(), string(ob.Bias),
			ob.Upper, ob.Lower, ob.Size(), ob.Center(), ob.Volume(),
		); err != nil {
			return fmt.Errorf("storage.SavePass: insert block %s: %w", ob.FormedAt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SavePass: commit: %w", err)
	}
	return nil
}

// History devuelve las proyecciones de rupturas en el rango dado, ordenadas
// por timestamp ascendente.
func (s *SQLiteStorage) History(ctx context.Context, from, to time.Time) ([]domain.BreakRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, dt, break_type, direction, broken_level, break_price,
		       break_distance, atr_multiple, volume_confirmation, time_efficiency,
		       momentum_alignment, conviction_score, false_break_probability,
		       follow_through_potential, is_confirmed, is_failed
		FROM structure_breaks
		WHERE dt >= ? AND dt <= ?
		ORDER BY dt ASC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage.History: query: %w", err)
	}
	defer rows.Close()

	var records []domain.BreakRecord
	for rows.Next() {
		var r domain.BreakRecord
		var dt time.Time
		if err := rows.Scan(
			&r.Symbol, &dt, &r.Kind, &r.Direction, &r.BrokenLevel, &r.BreakPrice,
			&r.BreakDistance, &r.ATRMultiple, &r.VolumeConfirmed, &r.TimeEfficiency,
			&r.MomentumAligned, &r.ConvictionScore, &r.FalseBreakProbability,
			&r.FollowThroughPotential, &r.IsConfirmed, &r.IsFailed,
		); err != nil {
			return nil, fmt.Errorf("storage.History: scan: %w", err)
		}
		r.Timestamp = dt.UTC().Format(time.RFC3339Nano)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.History: rows: %w", err)
	}
	return records, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// passSummary devuelve el número de rupturas confirmadas y el mejor
// conviction score de la pasada.
func passSummary(breaks []domain.StructureBreak) (confirmed int, best float64) {
	for _, sb := range breaks {
		if sb.Confirmation.IsConfirmed {
			confirmed++
		}
		if sb.Confirmation.ConvictionScore > best {
			best = sb.Confirmation.ConvictionScore
		}
	}
	return confirmed, best
}
