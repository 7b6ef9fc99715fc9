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

// ErrTimeSlotBusy возвращается, когда интервал новой записи пересекается
// с уже существующей неотмененной записью специалиста.
var ErrTimeSlotBusy = errors.New("выбранное время уже занято")

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) AppointmentRepository {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) CreateInSlot(ctx context.Context, clientID int64, appointment domain.CreateAppointmentDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Сериализуем проверку и вставку по специалисту: без блокировки два
	// одновременных запроса могут пройти проверку по одному снимку данных
	// и создать пересекающиеся записи.
	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, appointment.SpecialistID)
	if err != nil {
		return 0, fmt.Errorf("ошибка блокировки календаря специалиста: %w", err)
	}

	var busy bool
	err = tx.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE specialist_id = $1
			AND status != 'cancelled'
			AND start_time < $3
			AND end_time > $2
		)`,
		appointment.SpecialistID,
		appointment.StartTime,
		appointment.EndTime,
	).Scan(&busy)

	if err != nil {
		return 0, fmt.Errorf("ошибка проверки пересечений: %w", err)
	}

	if busy {
		return 0, ErrTimeSlotBusy
	}

	var id int64
	err = tx.QueryRow(
		ctx,
		`INSERT INTO appointments (client_id, specialist_id, start_time, end_time, status, comment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING id`,
		clientID,
		appointment.SpecialistID,
		appointment.StartTime,
		appointment.EndTime,
		domain.AppointmentStatusPending,
		appointment.Comment,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания записи: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `
		SELECT id, client_id, specialist_id, start_time, end_time, status, comment, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var a domain.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.ClientID,
		&a.SpecialistID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Comment,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("запись не найдена")
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return &a, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, appointment domain.UpdateAppointmentDTO) error {
	var setParts []string
	var args []interface{}
	argPos := 1

	if appointment.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *appointment.Status)
		argPos++
	}
	if appointment.StartTime != nil {
		setParts = append(setParts, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, *appointment.StartTime)
		argPos++
	}
	if appointment.EndTime != nil {
		setParts = append(setParts, fmt.Sprintf("end_time = $%d", argPos))
		args = append(args, *appointment.EndTime)
		argPos++
	}
	if appointment.Comment != nil {
		setParts = append(setParts, fmt.Sprintf("comment = $%d", argPos))
		args = append(args, *appointment.Comment)
		argPos++
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE appointments SET %s WHERE id = $%d", strings.Join(setParts, ", "), argPos)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}

	return nil
}

func buildAppointmentConditions(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, *filter.ClientID)
		argPos++
	}
	if filter.SpecialistID != nil {
		conditions = append(conditions, fmt.Sprintf("specialist_id = $%d", argPos))
		args = append(args, *filter.SpecialistID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.ExcludeStatus != nil {
		conditions = append(conditions, fmt.Sprintf("status != $%d", argPos))
		args = append(args, *filter.ExcludeStatus)
		argPos++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_time >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_time < $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	where, args := buildAppointmentConditions(filter)

	query := `
		SELECT id, client_id, specialist_id, start_time, end_time, status, comment, created_at, updated_at
		FROM appointments
	` + where

	query += fmt.Sprintf(" ORDER BY start_time LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	where, args := buildAppointmentConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества записей: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) ListForRange(ctx context.Context, specialistID int64, from, to time.Time) ([]domain.Appointment, error) {
	query := `
		SELECT id, client_id, specialist_id, start_time, end_time, status, comment, created_at, updated_at
		FROM appointments
		WHERE specialist_id = $1
		AND status != 'cancelled'
		AND start_time < $3
		AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, specialistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей за период: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		err := rows.Scan(
			&a.ID,
			&a.ClientID,
			&a.SpecialistID,
			&a.StartTime,
			&a.EndTime,
			&a.Status,
			&a.Comment,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки записи: %w", err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}
