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

type ExceptionRepo struct {
	db *pgxpool.Pool
}

func NewExceptionRepository(db *pgxpool.Pool) ExceptionRepository {
	return &ExceptionRepo{db: db}
}

func (r *ExceptionRepo) Create(ctx context.Context, specialistID int64, exception domain.AvailabilityException) (int64, error) {
	var id int64

	query := `
		INSERT INTO availability_exceptions (
			specialist_id, date, is_available, start_time, end_time, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		specialistID,
		exception.Date,
		exception.IsAvailable,
		exception.StartTime,
		exception.EndTime,
		exception.Reason,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания исключения доступности: %w", err)
	}

	return id, nil
}

func (r *ExceptionRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityException, error) {
	query := `
		SELECT id, specialist_id, date, is_available, start_time, end_time, reason, created_at, updated_at
		FROM availability_exceptions
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *ExceptionRepo) GetByDate(ctx context.Context, specialistID int64, date time.Time) (*domain.AvailabilityException, error) {
	query := `
		SELECT id, specialist_id, date, is_available, start_time, end_time, reason, created_at, updated_at
		FROM availability_exceptions
		WHERE specialist_id = $1 AND date = $2
		ORDER BY id
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, specialistID, date))
}

func (r *ExceptionRepo) scanOne(row pgx.Row) (*domain.AvailabilityException, error) {
	var exc domain.AvailabilityException
	err := row.Scan(
		&exc.ID,
		&exc.SpecialistID,
		&exc.Date,
		&exc.IsAvailable,
		&exc.StartTime,
		&exc.EndTime,
		&exc.Reason,
		&exc.CreatedAt,
		&exc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения исключения доступности: %w", err)
	}

	return &exc, nil
}

func (r *ExceptionRepo) Update(ctx context.Context, id int64, exception domain.UpdateExceptionDTO) error {
	var setParts []string
	var args []interface{}
	argPos := 1

	if exception.IsAvailable != nil {
		setParts = append(setParts, fmt.Sprintf("is_available = $%d", argPos))
		args = append(args, *exception.IsAvailable)
		argPos++
	}
	if exception.StartTime != nil {
		setParts = append(setParts, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, *exception.StartTime)
		argPos++
	}
	if exception.EndTime != nil {
		setParts = append(setParts, fmt.Sprintf("end_time = $%d", argPos))
		args = append(args, *exception.EndTime)
		argPos++
	}
	if exception.Reason != nil {
		setParts = append(setParts, fmt.Sprintf("reason = $%d", argPos))
		args = append(args, *exception.Reason)
		argPos++
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE availability_exceptions SET %s WHERE id = $%d", strings.Join(setParts, ", "), argPos)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления исключения доступности: %w", err)
	}

	return nil
}

func (r *ExceptionRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM availability_exceptions WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления исключения доступности: %w", err)
	}

	return nil
}

func (r *ExceptionRepo) List(ctx context.Context, filter domain.ExceptionFilter) ([]domain.AvailabilityException, error) {
	query := `
		SELECT id, specialist_id, date, is_available, start_time, end_time, reason, created_at, updated_at
		FROM availability_exceptions
		WHERE 1=1
	`

	var args []interface{}
	argPos := 1

	if filter.SpecialistID != nil {
		query += fmt.Sprintf(" AND specialist_id = $%d", argPos)
		args = append(args, *filter.SpecialistID)
		argPos++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date < $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	query += " ORDER BY date, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка исключений: %w", err)
	}
	defer rows.Close()

	var exceptions []domain.AvailabilityException
	for rows.Next() {
		var exc domain.AvailabilityException
		err := rows.Scan(
			&exc.ID,
			&exc.SpecialistID,
			&exc.Date,
			&exc.IsAvailable,
			&exc.StartTime,
			&exc.EndTime,
			&exc.Reason,
			&exc.CreatedAt,
			&exc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки исключения: %w", err)
		}
		exceptions = append(exceptions, exc)
	}

	return exceptions, nil
}
