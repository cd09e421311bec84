package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/infra/pgutils"
	"github.com/fastprodman/ledger/internal/repos/users"
)

const selectUser = `
	SELECT id, username, password_hash, first_name, last_name, balance, created_at
	FROM users
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u       domain.User
		balance int64
	)

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &balance, &u.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}

	u.Balance = domain.Amount(balance)
	u.CreatedAt = u.CreatedAt.UTC()

	return u, nil
}

func (r *usersRepo) Add(ctx context.Context, u domain.User) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING id
	`, u.Username, u.PasswordHash, u.FirstName, u.LastName, sql.NullTime{Time: u.CreatedAt, Valid: !u.CreatedAt.IsZero()}).Scan(&id)
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return 0, users.ErrUsernameTaken
		}

		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = $2, password_hash = $3, first_name = $4, last_name = $5
		WHERE id = $1
	`, u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName)
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return users.ErrUsernameTaken
		}

		return fmt.Errorf("update user: %w", err)
	}

	return expectOneRow(res)
}

func (r *usersRepo) Delete(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return users.ErrUserReferenced
		}

		return fmt.Errorf("delete user: %w", err)
	}

	return expectOneRow(res)
}

func (r *usersRepo) FindByID(ctx context.Context, userID int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, users.ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return u, nil
}

func (r *usersRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, users.ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("find user by username: %w", err)
	}

	return u, nil
}

func (r *usersRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	//nolint:errcheck
	defer rows.Close()

	out := make([]domain.User, 0)

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		out = append(out, u)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return out, nil
}

func expectOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrUserNotFound
	}

	return nil
}
