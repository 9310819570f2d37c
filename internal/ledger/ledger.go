// Package ledger keeps a SQLite history of solved markets.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/equilib/internal/scenario"
)

// Ledger wraps a SQLite connection holding solve history.
type Ledger struct {
	conn *sqlx.DB
}

// Entry is one recorded solve.
type Entry struct {
	ID         int64   `db:"id"`
	RunID      string  `db:"run_id"`
	Name       string  `db:"name"`
	Method     string  `db:"method"`
	Demand     string  `db:"demand"`
	Supply     string  `db:"supply"`
	Price      float64 `db:"price"`
	Quantity   float64 `db:"quantity"`
	Elasticity float64 `db:"elasticity"`
	Iterations int     `db:"iterations"`
	CreatedAt  int64   `db:"created_at"`
}

// Time returns the entry's creation time.
func (e Entry) Time() time.Time { return time.Unix(e.CreatedAt, 0) }

// Open opens or creates a ledger database at path.
func Open(path string) (*Ledger, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	l := &Ledger{conn: conn}
	if err := l.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return l, nil
}

func (l *Ledger) Close() error {
	return l.conn.Close()
}

func (l *Ledger) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS solves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		method TEXT NOT NULL,
		demand TEXT NOT NULL,
		supply TEXT NOT NULL,
		price REAL NOT NULL,
		quantity REAL NOT NULL,
		elasticity REAL NOT NULL,
		iterations INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_solves_name ON solves(name);
	`
	_, err := l.conn.Exec(schema)
	return err
}

// Record stores an outcome, optionally linked to a saved run.
func (l *Ledger) Record(ctx context.Context, runID string, out *scenario.Outcome) (int64, error) {
	demand, err := describe(out, true)
	if err != nil {
		return 0, err
	}
	supply, err := describe(out, false)
	if err != nil {
		return 0, err
	}

	e := Entry{
		RunID:      runID,
		Name:       out.Name,
		Method:     out.Result.Method,
		Demand:     demand,
		Supply:     supply,
		Price:      out.Result.Price,
		Quantity:   out.Result.Quantity,
		Elasticity: out.Elasticity.Demand,
		Iterations: out.Result.Iterations,
		CreatedAt:  time.Now().Unix(),
	}

	res, err := l.conn.NamedExecContext(ctx, `INSERT INTO solves
		(run_id, name, method, demand, supply, price, quantity, elasticity, iterations, created_at)
		VALUES (:run_id, :name, :method, :demand, :supply, :price, :quantity, :elasticity, :iterations, :created_at)`, e)
	if err != nil {
		return 0, fmt.Errorf("insert solve: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := l.conn.SelectContext(ctx, &entries,
		"SELECT * FROM solves ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("select solves: %w", err)
	}
	return entries, nil
}

// ByName returns all entries recorded for a market name, oldest first.
func (l *Ledger) ByName(ctx context.Context, name string) ([]Entry, error) {
	var entries []Entry
	err := l.conn.SelectContext(ctx, &entries,
		"SELECT * FROM solves WHERE name = ? ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("select solves: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded solves.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM solves"); err != nil {
		return 0, err
	}
	return n, nil
}

func describe(out *scenario.Outcome, demand bool) (string, error) {
	c := out.Supply
	if demand {
		c = out.Demand
	}
	fn, err := c.Func()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(fn), nil
}
