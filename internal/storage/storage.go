package storage

import "context"

// FileStorage хранит фотографии профилей специалистов.
type FileStorage interface {
	// UploadPhoto сохраняет изображение и возвращает его публичный URL.
	UploadPhoto(ctx context.Context, data []byte, filename string) (string, error)

	// DeletePhoto удаляет изображение по URL, полученному из UploadPhoto.
	DeletePhoto(ctx context.Context, photoURL string) error
}
