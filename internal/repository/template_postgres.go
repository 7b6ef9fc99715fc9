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

type TemplateRepo struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) TemplateRepository {
	return &TemplateRepo{db: db}
}

func (r *TemplateRepo) Create(ctx context.Context, specialistID int64, template domain.CreateTemplateDTO) (int64, error) {
	var id int64

	maxAppointments := template.MaxAppointments
	if maxAppointments == 0 {
		maxAppointments = 1
	}

	query := `
		INSERT INTO availability_templates (
			specialist_id, day_of_week, start_time, end_time, slot_duration,
			buffer_before, buffer_after, max_appointments, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, $9, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		specialistID,
		template.DayOfWeek,
		template.StartTime,
		template.EndTime,
		template.SlotDuration,
		template.BufferBefore,
		template.BufferAfter,
		maxAppointments,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания шаблона доступности: %w", err)
	}

	return id, nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	query := `
		SELECT id, specialist_id, day_of_week, start_time, end_time, slot_duration,
		       buffer_before, buffer_after, max_appointments, is_active, created_at, updated_at
		FROM availability_templates
		WHERE id = $1
	`

	var tpl domain.AvailabilityTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tpl.ID,
		&tpl.SpecialistID,
		&tpl.DayOfWeek,
		&tpl.StartTime,
		&tpl.EndTime,
		&tpl.SlotDuration,
		&tpl.BufferBefore,
		&tpl.BufferAfter,
		&tpl.MaxAppointments,
		&tpl.IsActive,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения шаблона доступности: %w", err)
	}

	return &tpl, nil
}

func (r *TemplateRepo) Update(ctx context.Context, id int64, template domain.UpdateTemplateDTO) error {
	var setParts []string
	var args []interface{}
	argPos := 1

	if template.StartTime != nil {
		setParts = append(setParts, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, *template.StartTime)
		argPos++
	}
	if template.EndTime != nil {
		setParts = append(setParts, fmt.Sprintf("end_time = $%d", argPos))
		args = append(args, *template.EndTime)
		argPos++
	}
	if template.SlotDuration != nil {
		setParts = append(setParts, fmt.Sprintf("slot_duration = $%d", argPos))
		args = append(args, *template.SlotDuration)
		argPos++
	}
	if template.BufferBefore != nil {
		setParts = append(setParts, fmt.Sprintf("buffer_before = $%d", argPos))
		args = append(args, *template.BufferBefore)
		argPos++
	}
	if template.BufferAfter != nil {
		setParts = append(setParts, fmt.Sprintf("buffer_after = $%d", argPos))
		args = append(args, *template.BufferAfter)
		argPos++
	}
	if template.MaxAppointments != nil {
		setParts = append(setParts, fmt.Sprintf("max_appointments = $%d", argPos))
		args = append(args, *template.MaxAppointments)
		argPos++
	}
	if template.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *template.IsActive)
		argPos++
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE availability_templates SET %s WHERE id = $%d", strings.Join(setParts, ", "), argPos)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления шаблона доступности: %w", err)
	}

	return nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM availability_templates WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления шаблона доступности: %w", err)
	}

	return nil
}

func (r *TemplateRepo) List(ctx context.Context, filter domain.TemplateFilter) ([]domain.AvailabilityTemplate, error) {
	query := `
		SELECT id, specialist_id, day_of_week, start_time, end_time, slot_duration,
		       buffer_before, buffer_after, max_appointments, is_active, created_at, updated_at
		FROM availability_templates
		WHERE 1=1
	`

	var args []interface{}
	argPos := 1

	if filter.SpecialistID != nil {
		query += fmt.Sprintf(" AND specialist_id = $%d", argPos)
		args = append(args, *filter.SpecialistID)
		argPos++
	}
	if filter.DayOfWeek != nil {
		query += fmt.Sprintf(" AND day_of_week = $%d", argPos)
		args = append(args, *filter.DayOfWeek)
		argPos++
	}
	if filter.OnlyActive {
		query += " AND is_active = true"
	}

	query += " ORDER BY day_of_week, start_time, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка шаблонов: %w", err)
	}
	defer rows.Close()

	var templates []domain.AvailabilityTemplate
	for rows.Next() {
		var tpl domain.AvailabilityTemplate
		err := rows.Scan(
			&tpl.ID,
			&tpl.SpecialistID,
			&tpl.DayOfWeek,
			&tpl.StartTime,
			&tpl.EndTime,
			&tpl.SlotDuration,
			&tpl.BufferBefore,
			&tpl.BufferAfter,
			&tpl.MaxAppointments,
			&tpl.IsActive,
			&tpl.CreatedAt,
			&tpl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки шаблона: %w", err)
		}
		templates = append(templates, tpl)
	}

	return templates, nil
}
