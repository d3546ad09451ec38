package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
)

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, full_name, username, email, phone, role, approved, blocked, created_at, updated_at`

func (r *profilesRepo) scanProfile(row interface{ Scan(...any) error }) (domain.Profile, error) {
	var (
		p        domain.Profile
		username sql.NullString
		role     string
	)
	err := row.Scan(
		&p.ID, &p.FullName, &username, &p.Email, &p.Phone,
		&role, &p.Approved, &p.Blocked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	p.Username = username.String
	p.Role = domain.ParseRole(role)
	return p, nil
}

func (r *profilesRepo) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)

	p, err := r.scanProfile(row)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) GetByEmail(ctx context.Context, email string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)

	p, err := r.scanProfile(row)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) Create(ctx context.Context, p domain.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FullName, nullIfEmpty(p.Username), p.Email, p.Phone,
		string(p.Role), p.Approved, p.Blocked, p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *profilesRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET approved = ?, updated_at = ? WHERE id = ?`,
		approved, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *profilesRepo) SetBlocked(ctx context.Context, id string, blocked bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET blocked = ?, updated_at = ? WHERE id = ?`,
		blocked, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *profilesRepo) ListPending(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE approved = 0 AND blocked = 0
		 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profilesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
