package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bookly/config"
	"bookly/internal/availability"
	"bookly/internal/domain"
	"bookly/internal/repository"
)

const maxSlotRangeDays = 31

var (
	ErrBadTimeWindow = errors.New("время начала должно быть раньше времени окончания")
	ErrBadSlotRange  = errors.New("некорректный диапазон дат")
)

type AvailabilityServiceImpl struct {
	templateRepo    repository.TemplateRepository
	exceptionRepo   repository.ExceptionRepository
	appointmentRepo repository.AppointmentRepository
	specialistRepo  repository.SpecialistRepository
	cfg             config.AvailabilityConfig
	logger          *zap.Logger
}

func NewAvailabilityService(
	templateRepo repository.TemplateRepository,
	exceptionRepo repository.ExceptionRepository,
	appointmentRepo repository.AppointmentRepository,
	specialistRepo repository.SpecialistRepository,
	cfg config.AvailabilityConfig,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		templateRepo:    templateRepo,
		exceptionRepo:   exceptionRepo,
		appointmentRepo: appointmentRepo,
		specialistRepo:  specialistRepo,
		cfg:             cfg,
		logger:          logger,
	}
}

func (s *AvailabilityServiceImpl) CreateTemplate(ctx context.Context, specialistID int64, dto domain.CreateTemplateDTO) (int64, error) {
	if _, err := s.specialistRepo.GetByID(ctx, specialistID); err != nil {
		s.logger.Error("специалист не найден при создании шаблона", zap.Int64("specialistID", specialistID), zap.Error(err))
		return 0, errors.New("специалист не найден")
	}

	if err := validateWindow(dto.StartTime, dto.EndTime); err != nil {
		return 0, err
	}

	if dto.SlotDuration < 10 || dto.SlotDuration > 240 {
		return 0, errors.New("длительность слота должна быть от 10 до 240 минут")
	}

	id, err := s.templateRepo.Create(ctx, specialistID, dto)
	if err != nil {
		s.logger.Error("ошибка создания шаблона доступности", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания шаблона доступности: %w", err)
	}

	return id, nil
}

func (s *AvailabilityServiceImpl) GetTemplateByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения шаблона доступности", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения шаблона доступности: %w", err)
	}
	return tpl, nil
}

func (s *AvailabilityServiceImpl) UpdateTemplate(ctx context.Context, id int64, dto domain.UpdateTemplateDTO) error {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения шаблона доступности: %w", err)
	}
	if tpl == nil {
		return errors.New("шаблон доступности не найден")
	}

	startTime := tpl.StartTime
	if dto.StartTime != nil {
		startTime = *dto.StartTime
	}
	endTime := tpl.EndTime
	if dto.EndTime != nil {
		endTime = *dto.EndTime
	}
	if err := validateWindow(startTime, endTime); err != nil {
		return err
	}

	if dto.SlotDuration != nil && (*dto.SlotDuration < 10 || *dto.SlotDuration > 240) {
		return errors.New("длительность слота должна быть от 10 до 240 минут")
	}

	if err := s.templateRepo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления шаблона доступности", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления шаблона доступности: %w", err)
	}

	return nil
}

func (s *AvailabilityServiceImpl) DeleteTemplate(ctx context.Context, id int64) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления шаблона доступности", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка удаления шаблона доступности: %w", err)
	}
	return nil
}

func (s *AvailabilityServiceImpl) ListTemplates(ctx context.Context, specialistID int64) ([]domain.AvailabilityTemplate, error) {
	templates, err := s.templateRepo.List(ctx, domain.TemplateFilter{SpecialistID: &specialistID})
	if err != nil {
		s.logger.Error("ошибка получения списка шаблонов", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка шаблонов: %w", err)
	}
	return templates, nil
}

func (s *AvailabilityServiceImpl) CreateException(ctx context.Context, specialistID int64, dto domain.CreateExceptionDTO) (int64, error) {
	if _, err := s.specialistRepo.GetByID(ctx, specialistID); err != nil {
		s.logger.Error("специалист не найден при создании исключения", zap.Int64("specialistID", specialistID), zap.Error(err))
		return 0, errors.New("специалист не найден")
	}

	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	if (dto.StartTime == nil) != (dto.EndTime == nil) {
		return 0, errors.New("окно исключения требует и время начала, и время окончания")
	}
	if dto.StartTime != nil {
		if err := validateWindow(*dto.StartTime, *dto.EndTime); err != nil {
			return 0, err
		}
	}

	existing, err := s.exceptionRepo.GetByDate(ctx, specialistID, date)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки существующего исключения: %w", err)
	}
	if existing != nil {
		return 0, errors.New("исключение на эту дату уже существует")
	}

	id, err := s.exceptionRepo.Create(ctx, specialistID, domain.AvailabilityException{
		SpecialistID: specialistID,
		Date:         date,
		IsAvailable:  dto.IsAvailable,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Reason:       dto.Reason,
	})
	if err != nil {
		s.logger.Error("ошибка создания исключения доступности", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания исключения доступности: %w", err)
	}

	return id, nil
}

func (s *AvailabilityServiceImpl) GetExceptionByID(ctx context.Context, id int64) (*domain.AvailabilityException, error) {
	exc, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения исключения доступности", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения исключения доступности: %w", err)
	}
	return exc, nil
}

func (s *AvailabilityServiceImpl) UpdateException(ctx context.Context, id int64, dto domain.UpdateExceptionDTO) error {
	exc, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения исключения доступности: %w", err)
	}
	if exc == nil {
		return errors.New("исключение доступности не найдено")
	}

	startTime := exc.StartTime
	if dto.StartTime != nil {
		startTime = dto.StartTime
	}
	endTime := exc.EndTime
	if dto.EndTime != nil {
		endTime = dto.EndTime
	}
	if startTime != nil && endTime != nil {
		if err := validateWindow(*startTime, *endTime); err != nil {
			return err
		}
	}

	if err := s.exceptionRepo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления исключения доступности", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления исключения доступности: %w", err)
	}

	return nil
}

func (s *AvailabilityServiceImpl) DeleteException(ctx context.Context, id int64) error {
	if err := s.exceptionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления исключения доступности", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка удаления исключения доступности: %w", err)
	}
	return nil
}

func (s *AvailabilityServiceImpl) ListExceptions(ctx context.Context, specialistID int64, from, to string) ([]domain.AvailabilityException, error) {
	filter := domain.ExceptionFilter{SpecialistID: &specialistID}

	if from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, errors.New("неверный формат даты начала, ожидается YYYY-MM-DD")
		}
		filter.StartDate = &fromDate
	}
	if to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, errors.New("неверный формат даты окончания, ожидается YYYY-MM-DD")
		}
		filter.EndDate = &toDate
	}

	exceptions, err := s.exceptionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка исключений", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка исключений: %w", err)
	}

	return exceptions, nil
}

// GetDaySlots генерирует слоты специалиста на один день.
func (s *AvailabilityServiceImpl) GetDaySlots(ctx context.Context, specialistID int64, date string) ([]availability.Slot, error) {
	result, err := s.GetAvailableSlots(ctx, specialistID, date, "")
	if err != nil {
		return nil, err
	}
	return result[date], nil
}

// GetAvailableSlots генерирует слоты по датам за период [from, to).
// Пустой to означает один день from.
func (s *AvailabilityServiceImpl) GetAvailableSlots(ctx context.Context, specialistID int64, from, to string) (map[string][]availability.Slot, error) {
	specialist, err := s.specialistRepo.GetByID(ctx, specialistID)
	if err != nil {
		s.logger.Error("специалист не найден при генерации слотов", zap.Int64("specialistID", specialistID), zap.Error(err))
		return nil, errors.New("специалист не найден")
	}

	loc, err := s.resolveLocation(specialist)
	if err != nil {
		return nil, err
	}

	fromDate, err := time.ParseInLocation("2006-01-02", from, loc)
	if err != nil {
		return nil, errors.New("неверный формат даты начала, ожидается YYYY-MM-DD")
	}

	toDate := fromDate.AddDate(0, 0, 1)
	if to != "" {
		toDate, err = time.ParseInLocation("2006-01-02", to, loc)
		if err != nil {
			return nil, errors.New("неверный формат даты окончания, ожидается YYYY-MM-DD")
		}
	}

	if !fromDate.Before(toDate) {
		return nil, ErrBadSlotRange
	}
	if toDate.After(fromDate.AddDate(0, 0, maxSlotRangeDays)) {
		return nil, fmt.Errorf("%w: период не может превышать %d дней", ErrBadSlotRange, maxSlotRangeDays)
	}

	templates, err := s.templateRepo.List(ctx, domain.TemplateFilter{SpecialistID: &specialistID})
	if err != nil {
		s.logger.Error("ошибка получения шаблонов для генерации слотов", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения шаблонов: %w", err)
	}

	exceptions, err := s.exceptionRepo.List(ctx, domain.ExceptionFilter{
		SpecialistID: &specialistID,
		StartDate:    &fromDate,
		EndDate:      &toDate,
	})
	if err != nil {
		s.logger.Error("ошибка получения исключений для генерации слотов", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения исключений: %w", err)
	}

	appointments, err := s.appointmentRepo.ListForRange(ctx, specialistID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ошибка получения записей для генерации слотов", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записей: %w", err)
	}

	engine := availability.NewEngine(availability.Config{
		Location:            loc,
		DefaultSlotDuration: s.cfg.DefaultSlotDuration,
	})

	slots, err := engine.RangeSlots(
		fromDate,
		toDate,
		toEngineTemplates(templates),
		toEngineExceptions(exceptions),
		toEngineBookings(appointments),
	)
	if err != nil {
		s.logger.Error("ошибка генерации слотов", zap.Int64("specialistID", specialistID), zap.Error(err))
		return nil, fmt.Errorf("ошибка генерации слотов: %w", err)
	}

	return slots, nil
}

func (s *AvailabilityServiceImpl) resolveLocation(specialist *domain.Specialist) (*time.Location, error) {
	loc, err := specialistLocation(specialist, s.cfg.Timezone)
	if err != nil {
		s.logger.Error("неизвестный часовой пояс специалиста", zap.String("timezone", specialist.Timezone), zap.Error(err))
	}
	return loc, err
}

// specialistLocation возвращает календарный часовой пояс специалиста,
// при его отсутствии берётся пояс из конфигурации.
func specialistLocation(specialist *domain.Specialist, defaultTZ string) (*time.Location, error) {
	tz := specialist.Timezone
	if tz == "" {
		tz = defaultTZ
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("неизвестный часовой пояс %q: %w", tz, err)
	}

	return loc, nil
}

func validateWindow(startTime, endTime string) error {
	startMin, err := availability.ParseClock(startTime)
	if err != nil {
		return err
	}

	endMin, err := availability.ParseClock(endTime)
	if err != nil {
		return err
	}

	if startMin >= endMin {
		return ErrBadTimeWindow
	}

	return nil
}

func toEngineTemplates(templates []domain.AvailabilityTemplate) []availability.WeeklyTemplate {
	result := make([]availability.WeeklyTemplate, 0, len(templates))
	for _, tpl := range templates {
		result = append(result, availability.WeeklyTemplate{
			DayOfWeek:       tpl.DayOfWeek,
			StartTime:       tpl.StartTime,
			EndTime:         tpl.EndTime,
			SlotDuration:    tpl.SlotDuration,
			BufferBefore:    tpl.BufferBefore,
			BufferAfter:     tpl.BufferAfter,
			MaxAppointments: tpl.MaxAppointments,
			IsActive:        tpl.IsActive,
		})
	}
	return result
}

func toEngineExceptions(exceptions []domain.AvailabilityException) []availability.DateException {
	result := make([]availability.DateException, 0, len(exceptions))
	for _, exc := range exceptions {
		result = append(result, availability.DateException{
			Date:        exc.Date,
			IsAvailable: exc.IsAvailable,
			StartTime:   exc.StartTime,
			EndTime:     exc.EndTime,
		})
	}
	return result
}

func toEngineBookings(appointments []domain.Appointment) []availability.Booking {
	result := make([]availability.Booking, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, availability.Booking{
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Status:    string(a.Status),
		})
	}
	return result
}
