package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
)

type pendingSignupsRepo struct {
	db dbtx
}

func (r *pendingSignupsRepo) Create(ctx context.Context, s domain.PendingSignup) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pending_signups (user_id, full_name, username, email, phone, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.FullName, nullIfEmpty(s.Username), s.Email, s.Phone, string(s.Role), s.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *pendingSignupsRepo) GetByUserID(ctx context.Context, userID string) (domain.PendingSignup, error) {
	var (
		s        domain.PendingSignup
		username sql.NullString
		role     string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, full_name, username, email, phone, role, created_at
		 FROM pending_signups WHERE user_id = ?`, userID).
		Scan(&s.UserID, &s.FullName, &username, &s.Email, &s.Phone, &role, &s.CreatedAt)
	if err != nil {
		return domain.PendingSignup{}, mapNotFound(err)
	}
	s.Username = username.String
	s.Role = domain.ParseRole(role)
	return s, nil
}

func (r *pendingSignupsRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pending_signups WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pendingSignupsRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_signups WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pendingSignupsRepo) DeleteStale(ctx context.Context, olderThanDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_signups WHERE created_at < ?`, cutoff)
	return err
}

// requireRow converts a zero-row update/delete into store.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
