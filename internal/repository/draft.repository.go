package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carteira/internal/domain"
)

type DraftRepository interface {
	Save(draft domain.Draft) error
	Get(id string) (*domain.Draft, error)
	Delete(id string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

func NewDraftRepository(db *sql.DB) DraftRepository {
	return draftRepositoryHandler{Db: db}
}

type draftRepositoryHandler struct {
	Db *sql.DB
}

func (h draftRepositoryHandler) Save(draft domain.Draft) error {
	now := time.Now().UTC()
	_, err := h.Db.Exec(`
		INSERT INTO draft (draft_id, owner, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(draft_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		draft.ID, draft.Owner, string(draft.Payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.ID, err)
	}
	return nil
}

func (h draftRepositoryHandler) Get(id string) (*domain.Draft, error) {
	row := h.Db.QueryRow(`
		SELECT draft_id, owner, payload, created_at, updated_at
		FROM draft WHERE draft_id = ?`, id,
	)

	draft := domain.Draft{}
	var payload string
	err := row.Scan(&draft.ID, &draft.Owner, &payload, &draft.CreatedAt, &draft.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", id, err)
	}
	draft.Payload = []byte(payload)
	return &draft, nil
}

func (h draftRepositoryHandler) Delete(id string) error {
	_, err := h.Db.Exec(`DELETE FROM draft WHERE draft_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return nil
}

func (h draftRepositoryHandler) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := h.Db.Exec(`DELETE FROM draft WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge drafts: %w", err)
	}
	return res.RowsAffected()
}
