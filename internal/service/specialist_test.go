package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookly/internal/domain"
)

// mockFileStorage is a test double for storage.FileStorage.
type mockFileStorage struct {
	uploads int
	deleted []string
}

func (m *mockFileStorage) UploadPhoto(ctx context.Context, data []byte, filename string) (string, error) {
	m.uploads++
	return fmt.Sprintf("https://bookly.s3.us-east-1.amazonaws.com/specialists/photo-%d.jpg", m.uploads), nil
}

func (m *mockFileStorage) DeletePhoto(ctx context.Context, photoURL string) error {
	m.deleted = append(m.deleted, photoURL)
	return nil
}

type specialistFixture struct {
	service     *SpecialistServiceImpl
	specialists *mockSpecialistRepo
	users       *mockUserRepo
	files       *mockFileStorage
}

func newSpecialistFixture() *specialistFixture {
	specialists := newMockSpecialistRepo()
	users := newMockUserRepo()
	files := &mockFileStorage{}

	users.users[10] = &domain.User{ID: 10, FirstName: "Петр", LastName: "Сидоров", Role: domain.UserRoleSpecialist}

	return &specialistFixture{
		service:     NewSpecialistService(specialists, users, files, zap.NewNop()),
		specialists: specialists,
		users:       users,
		files:       files,
	}
}

func TestSpecialistService_Create(t *testing.T) {
	f := newSpecialistFixture()
	ctx := context.Background()

	id, err := f.service.Create(ctx, 10, domain.CreateSpecialistDTO{
		Specialization: "Психолог",
		Timezone:       "Europe/Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = f.service.Create(ctx, 10, domain.CreateSpecialistDTO{Specialization: "Психолог"})
	assert.Error(t, err, "повторный профиль для того же пользователя должен отклоняться")
}

func TestSpecialistService_Create_UnknownUser(t *testing.T) {
	f := newSpecialistFixture()

	_, err := f.service.Create(context.Background(), 99, domain.CreateSpecialistDTO{Specialization: "Психолог"})
	assert.Error(t, err)
}

func TestSpecialistService_Create_BadTimezone(t *testing.T) {
	f := newSpecialistFixture()

	_, err := f.service.Create(context.Background(), 10, domain.CreateSpecialistDTO{
		Specialization: "Психолог",
		Timezone:       "Mars/Olympus",
	})
	assert.Error(t, err)
}

func TestSpecialistService_Update_BadTimezone(t *testing.T) {
	f := newSpecialistFixture()
	ctx := context.Background()

	id, err := f.service.Create(ctx, 10, domain.CreateSpecialistDTO{Specialization: "Психолог"})
	require.NoError(t, err)

	badTZ := "Nowhere/Nowhere"
	err = f.service.Update(ctx, id, domain.UpdateSpecialistDTO{Timezone: &badTZ})
	assert.Error(t, err)

	goodTZ := "Asia/Tokyo"
	err = f.service.Update(ctx, id, domain.UpdateSpecialistDTO{Timezone: &goodTZ})
	assert.NoError(t, err)
}

func TestSpecialistService_UploadProfilePhoto(t *testing.T) {
	f := newSpecialistFixture()
	ctx := context.Background()

	id, err := f.service.Create(ctx, 10, domain.CreateSpecialistDTO{Specialization: "Психолог"})
	require.NoError(t, err)

	require.NoError(t, f.service.UploadProfilePhoto(ctx, id, []byte("png-bytes"), "avatar.png"))

	specialist, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, specialist.ProfilePhotoURL)
	firstURL := *specialist.ProfilePhotoURL
	assert.Contains(t, firstURL, "specialists/")

	// Повторная загрузка заменяет фото и удаляет старый объект.
	require.NoError(t, f.service.UploadProfilePhoto(ctx, id, []byte("new-bytes"), "avatar2.png"))

	specialist, err = f.service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, firstURL, *specialist.ProfilePhotoURL)
	assert.Equal(t, []string{firstURL}, f.files.deleted)
}

func TestSpecialistService_UploadProfilePhoto_UnknownSpecialist(t *testing.T) {
	f := newSpecialistFixture()

	err := f.service.UploadProfilePhoto(context.Background(), 42, []byte("png-bytes"), "avatar.png")
	assert.Error(t, err)
	assert.Zero(t, f.files.uploads)
}

func TestSpecialistService_DeleteProfilePhoto(t *testing.T) {
	f := newSpecialistFixture()
	ctx := context.Background()

	id, err := f.service.Create(ctx, 10, domain.CreateSpecialistDTO{Specialization: "Психолог"})
	require.NoError(t, err)

	err = f.service.DeleteProfilePhoto(ctx, id)
	assert.Error(t, err, "удаление без загруженного фото должно возвращать ошибку")

	require.NoError(t, f.service.UploadProfilePhoto(ctx, id, []byte("png-bytes"), "avatar.png"))
	require.NoError(t, f.service.DeleteProfilePhoto(ctx, id))

	specialist, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, f.files.deleted, 1)
	if specialist.ProfilePhotoURL != nil {
		assert.Empty(t, *specialist.ProfilePhotoURL)
	}
}
