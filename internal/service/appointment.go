package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bookly/internal/availability"
	"bookly/internal/domain"
	"bookly/internal/repository"
)

var (
	ErrSlotUnavailable  = errors.New("выбранное время недоступно")
	ErrOutsideSchedule  = errors.New("выбранное время вне расписания специалиста")
	ErrInvalidTimeRange = errors.New("время начала записи должно быть раньше времени окончания")
)

type AppointmentServiceImpl struct {
	repo            repository.AppointmentRepository
	specialistRepo  repository.SpecialistRepository
	userRepo        repository.UserRepository
	availabilitySvc AvailabilityService
	notifier        AvailabilityNotifier
	defaultTZ       string
	logger          *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	specialistRepo repository.SpecialistRepository,
	userRepo repository.UserRepository,
	availabilitySvc AvailabilityService,
	notifier AvailabilityNotifier,
	defaultTZ string,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:            repo,
		specialistRepo:  specialistRepo,
		userRepo:        userRepo,
		availabilitySvc: availabilitySvc,
		notifier:        notifier,
		defaultTZ:       defaultTZ,
		logger:          logger,
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, clientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, clientID); err != nil {
		s.logger.Error("клиент не найден при создании записи", zap.Int64("clientID", clientID), zap.Error(err))
		return 0, errors.New("клиент не найден")
	}

	specialist, err := s.specialistRepo.GetByID(ctx, dto.SpecialistID)
	if err != nil {
		s.logger.Error("специалист не найден при создании записи", zap.Int64("specialistID", dto.SpecialistID), zap.Error(err))
		return 0, errors.New("специалист не найден")
	}

	if !dto.StartTime.Before(dto.EndTime) {
		return 0, ErrInvalidTimeRange
	}

	loc, err := specialistLocation(specialist, s.defaultTZ)
	if err != nil {
		return 0, err
	}

	// Интервал должен совпадать с одним из предлагаемых слотов специалиста.
	// Календарный день определяется в поясе специалиста.
	dateKey := availability.DateKey(dto.StartTime, loc)
	slots, err := s.availabilitySvc.GetDaySlots(ctx, dto.SpecialistID, dateKey)
	if err != nil {
		s.logger.Error("ошибка получения слотов при создании записи", zap.Error(err))
		return 0, errors.New("ошибка при проверке доступности времени")
	}

	matched := false
	for _, slot := range slots {
		if slot.StartTime.Equal(dto.StartTime) && slot.EndTime.Equal(dto.EndTime) {
			if !slot.Available {
				return 0, ErrSlotUnavailable
			}
			matched = true
			break
		}
	}
	if !matched {
		return 0, ErrOutsideSchedule
	}

	// Вставка с повторной проверкой пересечений под блокировкой:
	// предварительная проверка по слотам не защищает от одновременного
	// бронирования того же интервала.
	id, err := s.repo.CreateInSlot(ctx, clientID, dto)
	if err != nil {
		if errors.Is(err, repository.ErrTimeSlotBusy) {
			return 0, ErrSlotUnavailable
		}
		s.logger.Error("ошибка создания записи", zap.Error(err))
		return 0, errors.New("ошибка при создании записи")
	}

	s.notifyChanged(specialist.ID, dto.StartTime)

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("запись не найдена")
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("запись для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("запись не найдена")
	}

	if dto.StartTime != nil || dto.EndTime != nil {
		startTime := appointment.StartTime
		if dto.StartTime != nil {
			startTime = *dto.StartTime
		}
		endTime := appointment.EndTime
		if dto.EndTime != nil {
			endTime = *dto.EndTime
		}

		if !startTime.Before(endTime) {
			return ErrInvalidTimeRange
		}

		others, err := s.repo.ListForRange(ctx, appointment.SpecialistID, startTime, endTime)
		if err != nil {
			s.logger.Error("ошибка получения записей при переносе", zap.Error(err))
			return errors.New("ошибка при проверке доступности времени")
		}

		bookings := make([]availability.Booking, 0, len(others))
		for _, other := range others {
			if other.ID == appointment.ID {
				continue
			}
			bookings = append(bookings, availability.Booking{
				StartTime: other.StartTime,
				EndTime:   other.EndTime,
				Status:    string(other.Status),
			})
		}

		overlaps, err := availability.HasOverlap(startTime, endTime, bookings)
		if err != nil {
			return ErrInvalidTimeRange
		}
		if overlaps {
			return ErrSlotUnavailable
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении записи")
	}

	s.notifyChanged(appointment.SpecialistID, appointment.StartTime)

	return nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("запись для отмены не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("запись не найдена")
	}

	dto := domain.UpdateAppointmentDTO{
		Status: PointerTo(domain.AppointmentStatusCancelled),
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка отмены записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отмене записи")
	}

	s.notifyChanged(appointment.SpecialistID, appointment.StartTime)

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при получении списка записей: %w", err)
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return appointments, 0, nil
	}

	for i := range appointments {
		s.enrich(ctx, &appointments[i])
	}

	return appointments, count, nil
}

func (s *AppointmentServiceImpl) enrich(ctx context.Context, appointment *domain.Appointment) {
	client, err := s.userRepo.GetByID(ctx, appointment.ClientID)
	if err != nil {
		s.logger.Warn("не удалось получить данные клиента", zap.Int64("clientID", appointment.ClientID), zap.Error(err))
	} else {
		appointment.ClientName = client.FirstName + " " + client.LastName
		appointment.ClientPhone = client.Phone
	}

	specialist, err := s.specialistRepo.GetByID(ctx, appointment.SpecialistID)
	if err != nil {
		s.logger.Warn("не удалось получить данные специалиста", zap.Int64("specialistID", appointment.SpecialistID), zap.Error(err))
	} else {
		appointment.SpecialistName = specialist.User.FirstName + " " + specialist.User.LastName
	}
}

func (s *AppointmentServiceImpl) notifyChanged(specialistID int64, startTime time.Time) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyAvailabilityChanged(specialistID, startTime.Format("2006-01-02"))
}
