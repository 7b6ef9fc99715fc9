package service

import (
	"context"

	"go.uber.org/zap"

	"bookly/config"
	"bookly/internal/availability"
	"bookly/internal/domain"
	"bookly/internal/repository"
	"bookly/internal/storage"
)

// AvailabilityNotifier получает уведомления об изменении доступности
// специалиста на конкретную дату (создание или отмена записи).
type AvailabilityNotifier interface {
	NotifyAvailabilityChanged(specialistID int64, date string)
}

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Notifier    AvailabilityNotifier
}

type Services struct {
	User         UserService
	Auth         AuthService
	Specialist   SpecialistService
	Availability AvailabilityService
	Appointment  AppointmentService
}

func NewServices(deps Deps) *Services {
	availabilitySvc := NewAvailabilityService(
		deps.Repos.Template,
		deps.Repos.Exception,
		deps.Repos.Appointment,
		deps.Repos.Specialist,
		deps.Config.Availability,
		deps.Logger,
	)

	return &Services{
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Specialist:   NewSpecialistService(deps.Repos.Specialist, deps.Repos.User, deps.FileStorage, deps.Logger),
		Availability: availabilitySvc,
		Appointment:  NewAppointmentService(deps.Repos.Appointment, deps.Repos.Specialist, deps.Repos.User, availabilitySvc, deps.Notifier, deps.Config.Availability.Timezone, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type SpecialistService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateSpecialistDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSpecialistDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Specialist, error)
	UploadProfilePhoto(ctx context.Context, specialistID int64, photo []byte, filename string) error
	DeleteProfilePhoto(ctx context.Context, specialistID int64) error
}

type AvailabilityService interface {
	CreateTemplate(ctx context.Context, specialistID int64, dto domain.CreateTemplateDTO) (int64, error)
	GetTemplateByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
	UpdateTemplate(ctx context.Context, id int64, dto domain.UpdateTemplateDTO) error
	DeleteTemplate(ctx context.Context, id int64) error
	ListTemplates(ctx context.Context, specialistID int64) ([]domain.AvailabilityTemplate, error)

	CreateException(ctx context.Context, specialistID int64, dto domain.CreateExceptionDTO) (int64, error)
	GetExceptionByID(ctx context.Context, id int64) (*domain.AvailabilityException, error)
	UpdateException(ctx context.Context, id int64, dto domain.UpdateExceptionDTO) error
	DeleteException(ctx context.Context, id int64) error
	ListExceptions(ctx context.Context, specialistID int64, from, to string) ([]domain.AvailabilityException, error)

	GetDaySlots(ctx context.Context, specialistID int64, date string) ([]availability.Slot, error)
	GetAvailableSlots(ctx context.Context, specialistID int64, from, to string) (map[string][]availability.Slot, error)
}

type AppointmentService interface {
	Create(ctx context.Context, clientID int64, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

func PointerTo[T any](v T) *T {
	return &v
}
