package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bookly/internal/domain"
	"bookly/internal/repository"
	"bookly/internal/storage"
)

type SpecialistServiceImpl struct {
	repo        repository.SpecialistRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewSpecialistService(
	repo repository.SpecialistRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *SpecialistServiceImpl {
	return &SpecialistServiceImpl{
		repo:        repo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *SpecialistServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateSpecialistDTO) (int64, error) {
	_, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("пользователь не найден при создании специалиста", zap.Int64("userID", userID), zap.Error(err))
		return 0, errors.New("пользователь не найден")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err == nil && existing != nil {
		s.logger.Error("пользователь уже зарегистрирован как специалист", zap.Int64("userID", userID))
		return 0, errors.New("пользователь уже зарегистрирован как специалист")
	}

	if dto.Timezone != "" {
		if _, err := time.LoadLocation(dto.Timezone); err != nil {
			s.logger.Error("некорректный часовой пояс", zap.String("timezone", dto.Timezone), zap.Error(err))
			return 0, errors.New("некорректный часовой пояс")
		}
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		s.logger.Error("ошибка создания специалиста", zap.Error(err))
		return 0, errors.New("ошибка при создании специалиста")
	}

	return id, nil
}

func (s *SpecialistServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	specialist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения специалиста", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("специалист не найден")
	}
	return specialist, nil
}

func (s *SpecialistServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error) {
	specialist, err := s.repo.GetByUserID(ctx, userID)
	if err != nil || specialist == nil {
		s.logger.Error("ошибка получения специалиста по ID пользователя", zap.Int64("userID", userID), zap.Error(err))
		return nil, errors.New("специалист не найден")
	}
	return specialist, nil
}

func (s *SpecialistServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateSpecialistDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("специалист для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("специалист не найден")
	}

	if dto.Timezone != nil && *dto.Timezone != "" {
		if _, err := time.LoadLocation(*dto.Timezone); err != nil {
			s.logger.Error("некорректный часовой пояс", zap.String("timezone", *dto.Timezone), zap.Error(err))
			return errors.New("некорректный часовой пояс")
		}
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления специалиста", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении специалиста")
	}

	return nil
}

func (s *SpecialistServiceImpl) Delete(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("специалист для удаления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("специалист не найден")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления специалиста", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении специалиста")
	}

	return nil
}

func (s *SpecialistServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.Specialist, error) {
	specialists, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка специалистов", zap.Error(err))
		return nil, errors.New("ошибка при получении списка специалистов")
	}

	return specialists, nil
}

func (s *SpecialistServiceImpl) UploadProfilePhoto(ctx context.Context, specialistID int64, photo []byte, filename string) error {
	specialist, err := s.repo.GetByID(ctx, specialistID)
	if err != nil {
		s.logger.Error("специалист не найден при загрузке фото", zap.Int64("specialistID", specialistID), zap.Error(err))
		return errors.New("специалист не найден")
	}

	photoURL, err := s.fileStorage.UploadPhoto(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото профиля", zap.Int64("specialistID", specialistID), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	if specialist.ProfilePhotoURL != nil && *specialist.ProfilePhotoURL != "" {
		if err := s.fileStorage.DeletePhoto(ctx, *specialist.ProfilePhotoURL); err != nil {
			s.logger.Warn("ошибка удаления старого фото профиля", zap.Int64("specialistID", specialistID), zap.Error(err))
		}
	}

	if err := s.repo.UpdateProfilePhoto(ctx, specialistID, photoURL); err != nil {
		s.logger.Error("ошибка сохранения ссылки на фото", zap.Int64("specialistID", specialistID), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	return nil
}

func (s *SpecialistServiceImpl) DeleteProfilePhoto(ctx context.Context, specialistID int64) error {
	specialist, err := s.repo.GetByID(ctx, specialistID)
	if err != nil {
		s.logger.Error("специалист не найден при удалении фото", zap.Int64("specialistID", specialistID), zap.Error(err))
		return errors.New("специалист не найден")
	}

	if specialist.ProfilePhotoURL == nil || *specialist.ProfilePhotoURL == "" {
		return errors.New("у специалиста нет фото профиля")
	}

	if err := s.fileStorage.DeletePhoto(ctx, *specialist.ProfilePhotoURL); err != nil {
		s.logger.Error("ошибка удаления фото из хранилища", zap.Int64("specialistID", specialistID), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	if err := s.repo.UpdateProfilePhoto(ctx, specialistID, ""); err != nil {
		s.logger.Error("ошибка очистки ссылки на фото", zap.Int64("specialistID", specialistID), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	return nil
}
