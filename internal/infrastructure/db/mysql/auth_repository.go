package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// mysqlDuplicateEntry is the server error code for a unique key violation.
const mysqlDuplicateEntry = 1062

// AuthRepository implements ports.AuthRepository on MySQL.
type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user insert id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE username = ?`, username)
}

func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE id = ?`, id)
}

func (r *AuthRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
