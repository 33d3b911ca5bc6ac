package sessionlog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// Store archives finished sessions to SQLite so reports survive
// process restarts and can be served over HTTP.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createSessions := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		start_time DATETIME,
		end_time DATETIME,
		scenario TEXT,
		severity TEXT,
		summary TEXT,
		body_region TEXT,
		transcript_count INTEGER,
		observation_count INTEGER,
		tool_call_count INTEGER,
		report TEXT
	);`

	createTranscripts := `
	CREATE TABLE IF NOT EXISTS transcript_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		role TEXT,
		text TEXT,
		timestamp DATETIME,
		FOREIGN KEY(session_id) REFERENCES sessions(id)
	);`

	if _, err := db.Exec(createSessions); err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	if _, err := db.Exec(createTranscripts); err != nil {
		return nil, fmt.Errorf("failed to create transcript_entries table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Archive writes one finished session and its transcript rows.
func (s *Store) Archive(log sessionLogFile, report string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO sessions
		(id, start_time, end_time, scenario, severity, summary, body_region,
		 transcript_count, observation_count, tool_call_count, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.SessionID, log.StartTime, log.EndTime,
		log.CurrentScenario.Scenario, log.CurrentScenario.Severity,
		log.CurrentScenario.Summary, log.CurrentScenario.BodyRegion,
		len(log.Transcripts), len(log.Observations), len(log.ToolCalls), report)
	if err != nil {
		return err
	}

	for _, e := range log.Transcripts {
		if _, err := tx.Exec(`INSERT INTO transcript_entries (session_id, role, text, timestamp)
			VALUES (?, ?, ?, ?)`, log.SessionID, e.Role, e.Text, e.Timestamp); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Report loads one archived session summary by ID.
func (s *Store) Report(sessionID string) (types.SessionReport, bool, error) {
	row := s.db.QueryRow(`SELECT id, start_time, scenario, severity, summary,
		body_region, transcript_count, observation_count, tool_call_count, report
		FROM sessions WHERE id = ?`, sessionID)

	var r types.SessionReport
	err := row.Scan(&r.SessionID, &r.StartedAt, &r.Scenario, &r.Severity,
		&r.Summary, &r.BodyRegion, &r.Transcripts, &r.Observations,
		&r.ToolCalls, &r.Report)
	if err == sql.ErrNoRows {
		return types.SessionReport{}, false, nil
	}
	if err != nil {
		return types.SessionReport{}, false, err
	}
	return r, true, nil
}
