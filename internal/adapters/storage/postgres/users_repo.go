package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-lost-found/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, phone, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Phone,
		u.CreatedAt,
	)
	if constraintViolation(err, codeUniqueViolation, "users_email_key") {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	if !validID(u.ID) {
		return users.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			email = $3,
			password = $4,
			phone = $5
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Phone,
	)
	if constraintViolation(err, codeUniqueViolation, "users_email_key") {
		return users.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	if !validID(id) {
		return users.User{}, users.ErrNotFound
	}
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, phone, created_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, phone, created_at
		FROM users
		WHERE email = $1
	`, email))
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
