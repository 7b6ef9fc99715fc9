package service

import (
	"context"
	"errors"
	"time"

	"bookly/internal/domain"
	"bookly/internal/repository"
)

// mockSpecialistRepo is a test double for repository.SpecialistRepository.
type mockSpecialistRepo struct {
	specialists map[int64]*domain.Specialist
	err         error
}

func newMockSpecialistRepo() *mockSpecialistRepo {
	return &mockSpecialistRepo{specialists: make(map[int64]*domain.Specialist)}
}

func (m *mockSpecialistRepo) Create(ctx context.Context, userID int64, dto domain.CreateSpecialistDTO) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	id := int64(len(m.specialists) + 1)
	m.specialists[id] = &domain.Specialist{
		ID:             id,
		UserID:         userID,
		Specialization: dto.Specialization,
		Timezone:       dto.Timezone,
	}
	return id, nil
}

func (m *mockSpecialistRepo) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	if m.err != nil {
		return nil, m.err
	}
	specialist, ok := m.specialists[id]
	if !ok {
		return nil, errors.New("специалист не найден")
	}
	return specialist, nil
}

func (m *mockSpecialistRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error) {
	for _, specialist := range m.specialists {
		if specialist.UserID == userID {
			return specialist, nil
		}
	}
	return nil, nil
}

func (m *mockSpecialistRepo) Update(ctx context.Context, id int64, dto domain.UpdateSpecialistDTO) error {
	return m.err
}

func (m *mockSpecialistRepo) Delete(ctx context.Context, id int64) error {
	delete(m.specialists, id)
	return m.err
}

func (m *mockSpecialistRepo) List(ctx context.Context, limit, offset int) ([]domain.Specialist, error) {
	result := make([]domain.Specialist, 0, len(m.specialists))
	for _, specialist := range m.specialists {
		result = append(result, *specialist)
	}
	return result, m.err
}

func (m *mockSpecialistRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	if specialist, ok := m.specialists[id]; ok {
		specialist.ProfilePhotoURL = &photoURL
	}
	return m.err
}

// mockUserRepo is a test double for repository.UserRepository.
type mockUserRepo struct {
	users map[int64]*domain.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	id := int64(len(m.users) + 1)
	m.users[id] = &domain.User{
		ID:           id,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: dto.Password,
		Role:         dto.Role,
		IsActive:     true,
	}
	return id, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, errors.New("пользователь не найден")
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("пользователь не найден")
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, errors.New("пользователь не найден")
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	return m.err
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if user, ok := m.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return m.err
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	delete(m.users, id)
	return m.err
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	result := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		result = append(result, *user)
	}
	return result, m.err
}

// mockTemplateRepo is a test double for repository.TemplateRepository.
type mockTemplateRepo struct {
	templates map[int64]*domain.AvailabilityTemplate
	nextID    int64
	err       error
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[int64]*domain.AvailabilityTemplate), nextID: 1}
}

func (m *mockTemplateRepo) Create(ctx context.Context, specialistID int64, dto domain.CreateTemplateDTO) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	id := m.nextID
	m.nextID++
	m.templates[id] = &domain.AvailabilityTemplate{
		ID:              id,
		SpecialistID:    specialistID,
		DayOfWeek:       dto.DayOfWeek,
		StartTime:       dto.StartTime,
		EndTime:         dto.EndTime,
		SlotDuration:    dto.SlotDuration,
		BufferBefore:    dto.BufferBefore,
		BufferAfter:     dto.BufferAfter,
		MaxAppointments: dto.MaxAppointments,
		IsActive:        true,
	}
	return id, nil
}

func (m *mockTemplateRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.templates[id], nil
}

func (m *mockTemplateRepo) Update(ctx context.Context, id int64, dto domain.UpdateTemplateDTO) error {
	return m.err
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id int64) error {
	delete(m.templates, id)
	return m.err
}

func (m *mockTemplateRepo) List(ctx context.Context, filter domain.TemplateFilter) ([]domain.AvailabilityTemplate, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.AvailabilityTemplate, 0, len(m.templates))
	for _, tpl := range m.templates {
		if filter.SpecialistID != nil && tpl.SpecialistID != *filter.SpecialistID {
			continue
		}
		result = append(result, *tpl)
	}
	return result, nil
}

// mockExceptionRepo is a test double for repository.ExceptionRepository.
type mockExceptionRepo struct {
	exceptions map[int64]*domain.AvailabilityException
	nextID     int64
	err        error
}

func newMockExceptionRepo() *mockExceptionRepo {
	return &mockExceptionRepo{exceptions: make(map[int64]*domain.AvailabilityException), nextID: 1}
}

func (m *mockExceptionRepo) Create(ctx context.Context, specialistID int64, exc domain.AvailabilityException) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	id := m.nextID
	m.nextID++
	exc.ID = id
	exc.SpecialistID = specialistID
	m.exceptions[id] = &exc
	return id, nil
}

func (m *mockExceptionRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityException, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.exceptions[id], nil
}

func (m *mockExceptionRepo) GetByDate(ctx context.Context, specialistID int64, date time.Time) (*domain.AvailabilityException, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, exc := range m.exceptions {
		if exc.SpecialistID == specialistID && exc.Date.Equal(date) {
			return exc, nil
		}
	}
	return nil, nil
}

func (m *mockExceptionRepo) Update(ctx context.Context, id int64, dto domain.UpdateExceptionDTO) error {
	if m.err != nil {
		return m.err
	}
	exc, ok := m.exceptions[id]
	if !ok {
		return errors.New("исключение доступности не найдено")
	}
	if dto.IsAvailable != nil {
		exc.IsAvailable = *dto.IsAvailable
	}
	if dto.StartTime != nil {
		exc.StartTime = dto.StartTime
	}
	if dto.EndTime != nil {
		exc.EndTime = dto.EndTime
	}
	if dto.Reason != nil {
		exc.Reason = *dto.Reason
	}
	return nil
}

func (m *mockExceptionRepo) Delete(ctx context.Context, id int64) error {
	delete(m.exceptions, id)
	return m.err
}

func (m *mockExceptionRepo) List(ctx context.Context, filter domain.ExceptionFilter) ([]domain.AvailabilityException, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.AvailabilityException, 0, len(m.exceptions))
	for _, exc := range m.exceptions {
		if filter.SpecialistID != nil && exc.SpecialistID != *filter.SpecialistID {
			continue
		}
		result = append(result, *exc)
	}
	return result, nil
}

// mockAppointmentRepo is a test double for repository.AppointmentRepository.
type mockAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	nextID       int64
	busy         bool
	err          error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[int64]*domain.Appointment), nextID: 1}
}

func (m *mockAppointmentRepo) CreateInSlot(ctx context.Context, clientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.busy {
		return 0, repository.ErrTimeSlotBusy
	}
	id := m.nextID
	m.nextID++
	m.appointments[id] = &domain.Appointment{
		ID:           id,
		ClientID:     clientID,
		SpecialistID: dto.SpecialistID,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Status:       domain.AppointmentStatusPending,
		Comment:      dto.Comment,
	}
	return id, nil
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, errors.New("запись не найдена")
	}
	return appointment, nil
}

func (m *mockAppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	if m.err != nil {
		return m.err
	}
	appointment, ok := m.appointments[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	if dto.Status != nil {
		appointment.Status = *dto.Status
	}
	if dto.StartTime != nil {
		appointment.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		appointment.EndTime = *dto.EndTime
	}
	return nil
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.Appointment, 0, len(m.appointments))
	for _, appointment := range m.appointments {
		result = append(result, *appointment)
	}
	return result, nil
}

func (m *mockAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	return len(m.appointments), m.err
}

func (m *mockAppointmentRepo) ListForRange(ctx context.Context, specialistID int64, from, to time.Time) ([]domain.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.Appointment, 0)
	for _, appointment := range m.appointments {
		if appointment.SpecialistID != specialistID || appointment.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if appointment.StartTime.Before(to) && appointment.EndTime.After(from) {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

// mockNotifier records availability change notifications.
type mockNotifier struct {
	specialistIDs []int64
	dates         []string
}

func (m *mockNotifier) NotifyAvailabilityChanged(specialistID int64, date string) {
	m.specialistIDs = append(m.specialistIDs, specialistID)
	m.dates = append(m.dates, date)
}
