package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookly/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user domain.CreateUserDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO users (first_name, last_name, email, phone, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Password,
		user.Role,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getByField(ctx, "id", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getByField(ctx, "phone", phone)
}

func (r *UserRepo) getByField(ctx context.Context, field string, value interface{}) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, phone, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, field)

	var user domain.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error {
	var setParts []string
	var args []interface{}
	argPos := 1

	if user.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", argPos))
		args = append(args, *user.FirstName)
		argPos++
	}
	if user.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", argPos))
		args = append(args, *user.LastName)
		argPos++
	}
	if user.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argPos))
		args = append(args, *user.Email)
		argPos++
	}
	if user.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", argPos))
		args = append(args, *user.Phone)
		argPos++
	}
	if user.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *user.IsActive)
		argPos++
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setParts, ", "), argPos)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, password_hash, role, is_active, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Phone,
			&user.PasswordHash,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки пользователя: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}
