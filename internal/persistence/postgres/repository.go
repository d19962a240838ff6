// Package postgres provides pgx-backed persistence for sets and outbox events.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/gymlog/internal/domain"
	"example.com/gymlog/internal/events"
	"example.com/gymlog/internal/observability"
)

// Repository provides Postgres-backed persistence for sets and outbox events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByOwner returns every set owned by userID in insertion order.
func (r *Repository) ListByOwner(ctx context.Context, userID string) ([]domain.SetRow, error) {
	const query = `SELECT set_id, user_id, weight, exercise, repetitions, created_date
        FROM sets WHERE user_id=$1 ORDER BY created_date, set_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SetRow
	for rows.Next() {
		var row domain.SetRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Weight, &row.Exercise, &row.Repetitions, &row.CreatedDate); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Create persists the row and records a set.created outbox event inside a
// single transaction, so the row and its event commit or roll back together.
func (r *Repository) Create(ctx context.Context, row domain.SetRow) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertSet = `INSERT INTO sets (set_id, user_id, weight, exercise, repetitions, created_date)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err = tx.Exec(ctx, insertSet,
		row.ID,
		row.UserID,
		row.Weight,
		row.Exercise,
		row.Repetitions,
		row.CreatedDate,
	)
	if err != nil {
		return err
	}

	if err = insertOutbox(ctx, tx, row, "set.created", events.SetCreated{
		SetID:       row.ID,
		UserID:      row.UserID,
		Exercise:    row.Exercise,
		Weight:      row.Weight,
		Repetitions: row.Repetitions,
		CreatedDate: row.CreatedDate,
	}); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}
	observability.RecordSetPersisted(row.CreatedDate)
	return nil
}

// DeleteByOwner removes at most one row matching owner+id and records a
// set.deleted outbox event in the same transaction. It returns the deleted
// row, or nil when no owned row matched.
func (r *Repository) DeleteByOwner(ctx context.Context, userID, setID string) (*domain.SetRow, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const deleteSet = `DELETE FROM sets WHERE user_id=$1 AND set_id=$2
        RETURNING set_id, user_id, weight, exercise, repetitions, created_date`

	var row domain.SetRow
	err = tx.QueryRow(ctx, deleteSet, userID, setID).Scan(
		&row.ID, &row.UserID, &row.Weight, &row.Exercise, &row.Repetitions, &row.CreatedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
			return nil, tx.Commit(ctx)
		}
		return nil, err
	}

	deletedAt := time.Now().UTC()
	if err = insertOutbox(ctx, tx, row, "set.deleted", events.SetDeleted{
		SetID:      row.ID,
		UserID:     row.UserID,
		Exercise:   row.Exercise,
		OccurredAt: deletedAt,
	}); err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, err
	}
	observability.RecordSetDeleted(deletedAt)
	return &row, nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, row domain.SetRow, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta, ok := eventCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	dedupeKey := fmt.Sprintf("%s:%s", row.ID, eventType)

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, stmt,
		"set",
		row.ID,
		eventType,
		meta.Topic,
		row.UserID,
		body,
		dedupeKey,
	)
	return err
}

type eventMeta struct {
	Topic string
}

// eventCatalog maps event types to their destination topics. Partitioning by
// user keeps one user's set history ordered on the stream.
var eventCatalog = map[string]eventMeta{
	"set.created": {Topic: "gymlog.set-events"},
	"set.deleted": {Topic: "gymlog.set-events"},
}
