package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"books_api/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EventSQL struct {
	db *sqlx.DB
}

func NewEventSQL(db *sqlx.DB) *EventSQL { return &EventSQL{db: db} }

var _ EventRepo = (*EventSQL)(nil)

const insertEventSQL = `INSERT INTO book_events (id, occurred_at, type, book_id, title, actor) VALUES (?, ?, ?, ?, ?, ?)`

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventSQL) Append(ctx context.Context, e models.BookEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		_, err := conn.ExecContext(ctx, conn.Rebind(insertEventSQL),
			e.EventID,
			e.OccurredAt,
			strings.ToUpper(strings.TrimSpace(e.Type)),
			e.BookID,
			e.Title,
			e.Actor,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.EventID, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *EventSQL) List(ctx context.Context, from, to time.Time, typ string) ([]models.BookEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, occurred_at, type, book_id, title, actor FROM book_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	out := make([]models.BookEvent, 0, 64)
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &out, conn.Rebind(q), args...)
	})
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	for i := range out {
		out[i].OccurredAt = out[i].OccurredAt.UTC()
	}
	return out, nil
}
