package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	draftmodels "homevest/internal/draft/models"
	"homevest/internal/registry/models"
	"homevest/pkg/domain"
	"homevest/pkg/platform/sentinel"
)

// PostgresStore persists registry entries in PostgreSQL. The unique index on
// (property_type, title) realizes the dedup invariant at the storage layer.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the table definition applied by integration tests and deploy
// migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS registry_entries (
	id               UUID PRIMARY KEY,
	property_type    TEXT NOT NULL,
	title            TEXT NOT NULL,
	location         TEXT NOT NULL,
	status           TEXT NOT NULL,
	enabled          BOOLEAN NOT NULL,
	paused           BOOLEAN NOT NULL,
	pause_reason     TEXT NOT NULL DEFAULT '',
	rejection_reason TEXT NOT NULL DEFAULT '',
	monthly_earnings DOUBLE PRECISION NOT NULL DEFAULT 0,
	occupancy_rate   DOUBLE PRECISION NOT NULL DEFAULT 0,
	bookings_count   INTEGER NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL,
	draft_payload    JSONB NOT NULL,
	UNIQUE (property_type, title)
);`

func (s *PostgresStore) Insert(ctx context.Context, entry *models.RegistryEntry) error {
	payload, err := json.Marshal(entry.Draft)
	if err != nil {
		return fmt.Errorf("encode draft payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO registry_entries (
			id, property_type, title, location, status, enabled, paused,
			pause_reason, rejection_reason, monthly_earnings, occupancy_rate,
			bookings_count, created_at, draft_payload
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		entry.ID.String(), entry.Type.String(), entry.Title, entry.Location,
		entry.Status.String(), entry.Enabled, entry.Paused,
		entry.PauseReason, entry.RejectionReason,
		entry.Metrics.MonthlyEarnings, entry.Metrics.OccupancyRate,
		entry.Metrics.BookingsCount, entry.CreatedAt, payload,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert registry entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.RegistryID) (*models.RegistryEntry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id.String())
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get registry entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) FindByKey(ctx context.Context, key models.DedupKey) (*models.RegistryEntry, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+` WHERE property_type = $1 AND title = $2`,
		key.Type.String(), key.Title)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registry entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) Update(ctx context.Context, entry *models.RegistryEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE registry_entries SET
			status = $2, enabled = $3, paused = $4, pause_reason = $5,
			rejection_reason = $6, monthly_earnings = $7, occupancy_rate = $8,
			bookings_count = $9
		WHERE id = $1`,
		entry.ID.String(), entry.Status.String(), entry.Enabled, entry.Paused,
		entry.PauseReason, entry.RejectionReason,
		entry.Metrics.MonthlyEarnings, entry.Metrics.OccupancyRate,
		entry.Metrics.BookingsCount,
	)
	if err != nil {
		return fmt.Errorf("update registry entry: %w", err)
	}
	return ensureAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.RegistryID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM registry_entries WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete registry entry: %w", err)
	}
	return ensureAffected(res)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.RegistryEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list registry entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.RegistryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registry entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registry entries: %w", err)
	}
	return entries, nil
}

const selectColumns = `
	SELECT id, property_type, title, location, status, enabled, paused,
	       pause_reason, rejection_reason, monthly_earnings, occupancy_rate,
	       bookings_count, created_at, draft_payload
	FROM registry_entries`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.RegistryEntry, error) {
	var (
		entry     models.RegistryEntry
		rawID     string
		rawType   string
		rawStatus string
		createdAt time.Time
		payload   []byte
	)
	err := row.Scan(&rawID, &rawType, &entry.Title, &entry.Location, &rawStatus,
		&entry.Enabled, &entry.Paused, &entry.PauseReason, &entry.RejectionReason,
		&entry.Metrics.MonthlyEarnings, &entry.Metrics.OccupancyRate,
		&entry.Metrics.BookingsCount, &createdAt, &payload)
	if err != nil {
		return nil, err
	}

	id, err := domain.ParseRegistryID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored registry id invalid: %s", rawID)
	}
	entry.ID = id
	entry.Type = domain.PropertyType(rawType)
	entry.Status = domain.ListingStatus(rawStatus)
	entry.CreatedAt = createdAt

	var draft draftmodels.PropertyDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft payload: %w", err)
	}
	entry.Draft = draft
	return &entry, nil
}

func ensureAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
