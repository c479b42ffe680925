package postgres

import (
	"context"
	"database/sql"

	"haulage/internal/domain"
)

// CommitStore is a PostgreSQL implementation of repository.CommitStore. The
// job update and its audit entries share one transaction, so a version
// conflict rolls back everything including the log writes.
type CommitStore struct {
	db *sql.DB
}

// NewCommitStore creates a new PostgreSQL commit store.
func NewCommitStore(db *sql.DB) *CommitStore {
	return &CommitStore{db: db}
}

// CommitMutation atomically applies the compare-and-swap job update and
// appends the audit entries.
func (s *CommitStore) CommitMutation(ctx context.Context, job *domain.Job, expectedVersion int64, entries []domain.AuditEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txJobRepo := NewJobRepositoryWithTx(tx)
	if err = txJobRepo.Update(ctx, job, expectedVersion); err != nil {
		return err
	}

	txAuditRepo := NewAuditRepositoryWithTx(tx)
	if err = txAuditRepo.Append(ctx, entries); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}
