package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookly/internal/domain"
	"bookly/internal/repository"
	"bookly/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	if !validator.ValidateEmail(dto.Email) {
		return 0, errors.New("некорректный email")
	}
	if !validator.ValidatePhone(dto.Phone) {
		return 0, errors.New("некорректный номер телефона")
	}
	if !validator.ValidatePassword(dto.Password) {
		return 0, errors.New("пароль должен содержать не менее 6 символов")
	}
	dto.Phone = validator.NormalizePhone(dto.Phone)

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err == nil && existing != nil {
		return 0, errors.New("пользователь с таким email уже существует")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return 0, errors.New("ошибка при создании пользователя")
	}
	dto.Password = string(hashedPassword)

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания пользователя", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения пользователя", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("пользователь не найден")
	}
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления пользователя", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("пользователь не найден при смене пароля", zap.Int64("id", id), zap.Error(err))
		return errors.New("пользователь не найден")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.OldPassword)); err != nil {
		return errors.New("неверный текущий пароль")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return errors.New("ошибка при смене пароля")
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashedPassword)); err != nil {
		s.logger.Error("ошибка обновления пароля", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}

	return nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления пользователя", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка пользователей", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	return users, nil
}
