package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/twcards/card-services/internal/cardsvc/service"
)

// AuditStore keeps the catalog mutation trail in postgres.
type AuditStore struct {
	db *pgxpool.Pool
}

func NewAuditStore(db *pgxpool.Pool) *AuditStore {
	return &AuditStore{db: db}
}

type AuditRecord struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	CardID    string    `json:"card_id"`
	CardName  string    `json:"card_name"`
	Fields    []string  `json:"fields"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *AuditStore) Record(ctx context.Context, entry service.AuditEntry) error {
	query := `
		INSERT INTO card_audit (action, card_id, card_name, fields, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Exec(ctx, query, entry.Action, entry.CardID, entry.CardName, entry.Fields, entry.At)
	if err != nil {
		return fmt.Errorf("could not record audit entry: %v", err)
	}

	return nil
}

func (s *AuditStore) ListRecent(ctx context.Context, limit, offset int64) ([]AuditRecord, error) {
	query := `
		SELECT id, action, card_id, card_name, fields, created_at
		FROM card_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Action,
			&rec.CardID,
			&rec.CardName,
			&rec.Fields,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
