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

type SpecialistRepo struct {
	db *pgxpool.Pool
}

func NewSpecialistRepository(db *pgxpool.Pool) SpecialistRepository {
	return &SpecialistRepo{db: db}
}

const specialistColumns = `
	s.id, s.user_id, s.specialization, s.description, s.timezone, s.consult_price,
	s.is_verified, s.profile_photo_url, s.created_at, s.updated_at,
	u.id, u.first_name, u.last_name, u.email, u.phone, u.role, u.is_active
`

func (r *SpecialistRepo) Create(ctx context.Context, userID int64, specialist domain.CreateSpecialistDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO specialists (user_id, specialization, description, timezone, consult_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		specialist.Specialization,
		specialist.Description,
		specialist.Timezone,
		specialist.ConsultPrice,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания профиля специалиста: %w", err)
	}

	return id, nil
}

func (r *SpecialistRepo) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM specialists s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`, specialistColumns)

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *SpecialistRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM specialists s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
	`, specialistColumns)

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *SpecialistRepo) scanOne(row pgx.Row) (*domain.Specialist, error) {
	var s domain.Specialist
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Specialization,
		&s.Description,
		&s.Timezone,
		&s.ConsultPrice,
		&s.IsVerified,
		&s.ProfilePhotoURL,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.User.ID,
		&s.User.FirstName,
		&s.User.LastName,
		&s.User.Email,
		&s.User.Phone,
		&s.User.Role,
		&s.User.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("специалист не найден")
		}
		return nil, fmt.Errorf("ошибка получения специалиста: %w", err)
	}

	return &s, nil
}

func (r *SpecialistRepo) Update(ctx context.Context, id int64, specialist domain.UpdateSpecialistDTO) error {
	var setParts []string
	var args []interface{}
	argPos := 1

	if specialist.Specialization != nil {
		setParts = append(setParts, fmt.Sprintf("specialization = $%d", argPos))
		args = append(args, *specialist.Specialization)
		argPos++
	}
	if specialist.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *specialist.Description)
		argPos++
	}
	if specialist.Timezone != nil {
		setParts = append(setParts, fmt.Sprintf("timezone = $%d", argPos))
		args = append(args, *specialist.Timezone)
		argPos++
	}
	if specialist.ConsultPrice != nil {
		setParts = append(setParts, fmt.Sprintf("consult_price = $%d", argPos))
		args = append(args, *specialist.ConsultPrice)
		argPos++
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE specialists SET %s WHERE id = $%d", strings.Join(setParts, ", "), argPos)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления специалиста: %w", err)
	}

	return nil
}

func (r *SpecialistRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM specialists WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления специалиста: %w", err)
	}

	return nil
}

func (r *SpecialistRepo) List(ctx context.Context, limit, offset int) ([]domain.Specialist, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM specialists s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.id
		LIMIT $1 OFFSET $2
	`, specialistColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка специалистов: %w", err)
	}
	defer rows.Close()

	var specialists []domain.Specialist
	for rows.Next() {
		var s domain.Specialist
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Specialization,
			&s.Description,
			&s.Timezone,
			&s.ConsultPrice,
			&s.IsVerified,
			&s.ProfilePhotoURL,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.User.ID,
			&s.User.FirstName,
			&s.User.LastName,
			&s.User.Email,
			&s.User.Phone,
			&s.User.Role,
			&s.User.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки специалиста: %w", err)
		}
		specialists = append(specialists, s)
	}

	return specialists, nil
}

func (r *SpecialistRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE specialists SET profile_photo_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото специалиста: %w", err)
	}

	return nil
}
