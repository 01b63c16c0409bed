// Package persistence provides SQLite-based storage of routing results.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for routing result storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		started_at TEXT NOT NULL,
		route_step REAL NOT NULL,
		final_time REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS link_results (
		run_id TEXT NOT NULL,
		time REAL NOT NULL,
		link TEXT NOT NULL,
		flow REAL NOT NULL,
		depth REAL NOT NULL,
		volume REAL NOT NULL,
		froude REAL NOT NULL,
		flow_class TEXT NOT NULL,
		PRIMARY KEY (run_id, time, link)
	);

	CREATE TABLE IF NOT EXISTS node_results (
		run_id TEXT NOT NULL,
		time REAL NOT NULL,
		node TEXT NOT NULL,
		depth REAL NOT NULL,
		head REAL NOT NULL,
		PRIMARY KEY (run_id, time, node)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRun registers a run and returns its id.
func (db *DB) NewRun(title string, routeStep, finalTime float64) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, title, started_at, route_step, final_time) VALUES (?, ?, ?, ?, ?)`,
		id, title, time.Now().UTC().Format(time.RFC3339), routeStep, finalTime)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// LinkResult is one link's state at one routing step.
type LinkResult struct {
	RunID     string  `db:"run_id"`
	Time      float64 `db:"time"`
	Link      string  `db:"link"`
	Flow      float64 `db:"flow"`
	Depth     float64 `db:"depth"`
	Volume    float64 `db:"volume"`
	Froude    float64 `db:"froude"`
	FlowClass string  `db:"flow_class"`
}

// NodeResult is one node's state at one routing step.
type NodeResult struct {
	RunID string  `db:"run_id"`
	Time  float64 `db:"time"`
	Node  string  `db:"node"`
	Depth float64 `db:"depth"`
	Head  float64 `db:"head"`
}

// SaveStep records all link and node results for one routing step in a
// single transaction.
func (db *DB) SaveStep(links []LinkResult, nodes []NodeResult) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, lr := range links {
		if _, err := tx.NamedExec(
			`INSERT OR REPLACE INTO link_results
			 (run_id, time, link, flow, depth, volume, froude, flow_class)
			 VALUES (:run_id, :time, :link, :flow, :depth, :volume, :froude, :flow_class)`, lr); err != nil {
			return fmt.Errorf("insert link result: %w", err)
		}
	}
	for _, nr := range nodes {
		if _, err := tx.NamedExec(
			`INSERT OR REPLACE INTO node_results
			 (run_id, time, node, depth, head)
			 VALUES (:run_id, :time, :node, :depth, :head)`, nr); err != nil {
			return fmt.Errorf("insert node result: %w", err)
		}
	}
	return tx.Commit()
}

// PeakFlows returns the largest flow magnitude recorded per link for a run.
func (db *DB) PeakFlows(runID string) (map[string]float64, error) {
	rows, err := db.conn.Queryx(
		`SELECT link, MAX(ABS(flow)) AS peak FROM link_results WHERE run_id = ? GROUP BY link`, runID)
	if err != nil {
		return nil, fmt.Errorf("query peaks: %w", err)
	}
	defer rows.Close()

	peaks := make(map[string]float64)
	for rows.Next() {
		var (
			link string
			peak float64
		)
		if err := rows.Scan(&link, &peak); err != nil {
			return nil, err
		}
		peaks[link] = peak
	}
	return peaks, rows.Err()
}
