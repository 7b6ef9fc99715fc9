package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookly/internal/domain"
)

type Repositories struct {
	User        UserRepository
	Auth        AuthRepository
	Specialist  SpecialistRepository
	Template    TemplateRepository
	Exception   ExceptionRepository
	Appointment AppointmentRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
		Specialist:  NewSpecialistRepository(db),
		Template:    NewTemplateRepository(db),
		Exception:   NewExceptionRepository(db),
		Appointment: NewAppointmentRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type SpecialistRepository interface {
	Create(ctx context.Context, userID int64, specialist domain.CreateSpecialistDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error)
	Update(ctx context.Context, id int64, specialist domain.UpdateSpecialistDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Specialist, error)
	UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error
}

type TemplateRepository interface {
	Create(ctx context.Context, specialistID int64, template domain.CreateTemplateDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
	Update(ctx context.Context, id int64, template domain.UpdateTemplateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.TemplateFilter) ([]domain.AvailabilityTemplate, error)
}

type ExceptionRepository interface {
	Create(ctx context.Context, specialistID int64, exception domain.AvailabilityException) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityException, error)
	GetByDate(ctx context.Context, specialistID int64, date time.Time) (*domain.AvailabilityException, error)
	Update(ctx context.Context, id int64, exception domain.UpdateExceptionDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ExceptionFilter) ([]domain.AvailabilityException, error)
}

type AppointmentRepository interface {
	// CreateInSlot атомарно проверяет пересечения и создает запись:
	// проверка и вставка выполняются в одной транзакции под advisory-блокировкой
	// по специалисту, при конфликте возвращается ErrTimeSlotBusy.
	CreateInSlot(ctx context.Context, clientID int64, appointment domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, appointment domain.UpdateAppointmentDTO) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	// ListForRange возвращает неотмененные записи специалиста,
	// пересекающиеся с интервалом [from, to).
	ListForRange(ctx context.Context, specialistID int64, from, to time.Time) ([]domain.Appointment, error)
}
