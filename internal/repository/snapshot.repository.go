package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carteira/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotRepository persists the last analysis result per owner so the
// dashboard survives a restart. Snapshots are replaced wholesale, matching
// the in-memory semantics.
type SnapshotRepository interface {
	Save(owner string, result *domain.AnalysisResult) error
	Get(owner string) (*domain.AnalysisResult, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return snapshotRepositoryHandler{Db: db}
}

type snapshotRepositoryHandler struct {
	Db *sql.DB
}

func (h snapshotRepositoryHandler) Save(owner string, result *domain.AnalysisResult) error {
	payload, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = h.Db.Exec(`
		INSERT INTO analysis_snapshot (owner, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		owner, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", owner, err)
	}
	return nil
}

func (h snapshotRepositoryHandler) Get(owner string) (*domain.AnalysisResult, error) {
	row := h.Db.QueryRow(`SELECT payload FROM analysis_snapshot WHERE owner = ?`, owner)

	var payload []byte
	err := row.Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w", owner, err)
	}

	result := &domain.AnalysisResult{}
	if err := msgpack.Unmarshal(payload, result); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", owner, err)
	}
	return result, nil
}

func (h snapshotRepositoryHandler) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := h.Db.Exec(`DELETE FROM analysis_snapshot WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge snapshots: %w", err)
	}
	return res.RowsAffected()
}
