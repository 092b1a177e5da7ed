// File path: internal/dispatch/sqlite.go
package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/deskmate-ai/deskmate/internal/common"
)

const sqliteBusyTimeout = 5 * time.Second

// SQLiteTicketStore persists tickets in a SQLite database so the ticket log
// survives restarts. The identifier sequence is seeded from the highest
// stored ticket number, keeping ids strictly increasing across runs.
type SQLiteTicketStore struct {
	db  *sqlx.DB
	seq Sequence
}

// OpenSQLiteTicketStore opens (and migrates) the ticket database at path.
func OpenSQLiteTicketStore(path string) (*SQLiteTicketStore, error) {
	logger := common.Logger()
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ticket db path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve ticket db path: %w", err)
	}
	busy := int(sqliteBusyTimeout / time.Millisecond)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ticket db: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), sqliteBusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ticket db: %w", err)
	}
	if _, err := db.ExecContext(ctx, ticketSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ticket db: %w", err)
	}

	var next sql.NullInt64
	if err := db.GetContext(ctx, &next, `SELECT MAX(number) + 1 FROM tickets`); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed ticket sequence: %w", err)
	}
	start := ticketSeqStart
	if next.Valid && int(next.Int64) > start {
		start = int(next.Int64)
	}
	logger.Info("dispatch: ticket store opened", "path", abs, "next_ticket", start)
	return &SQLiteTicketStore{db: db, seq: NewSequence(start)}, nil
}

const ticketSchema = `CREATE TABLE IF NOT EXISTS tickets (
        number INTEGER PRIMARY KEY,
        ticket_id TEXT NOT NULL UNIQUE,
        title TEXT NOT NULL,
        description TEXT NOT NULL,
        category TEXT NOT NULL,
        priority TEXT NOT NULL,
        status TEXT NOT NULL,
        created_at TEXT NOT NULL,
        estimated_resolution TEXT NOT NULL,
        assigned_to TEXT NOT NULL
)`

func (s *SQLiteTicketStore) Create(title, description, category, priority string) (Ticket, error) {
	number := s.seq.Next()
	ticket := newTicket(number, title, description, category, priority)
	_, err := s.db.Exec(
		`INSERT INTO tickets (number, ticket_id, title, description, category, priority, status, created_at, estimated_resolution, assigned_to)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		number, ticket.TicketID, ticket.Title, ticket.Description, ticket.Category,
		ticket.Priority, ticket.Status, ticket.CreatedAt, ticket.EstimatedResolution, ticket.AssignedTo,
	)
	if err != nil {
		return Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
	return ticket, nil
}

func (s *SQLiteTicketStore) Get(ticketID string) (Ticket, bool) {
	var ticket Ticket
	err := s.db.Get(&ticket,
		`SELECT ticket_id, title, description, category, priority, status, created_at, estimated_resolution, assigned_to
                 FROM tickets WHERE ticket_id = ?`, ticketID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			common.Logger().Error("dispatch: ticket lookup failed", "ticket_id", ticketID, "error", err)
		}
		return Ticket{}, false
	}
	return ticket, true
}

// Close releases the underlying database resources.
func (s *SQLiteTicketStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
