package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"bookly/config"
)

const photoPrefix = "specialists"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type S3Storage struct {
	client *minio.Client
	bucket string
	region string
	logger *zap.Logger
}

func NewS3Storage(cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент S3: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("не удалось проверить бакет %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("не удалось создать бакет %s: %w", cfg.Bucket, err)
		}
		logger.Info("создан бакет для фотографий", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
	}, nil
}

func (s *S3Storage) UploadPhoto(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("пустой файл")
	}

	contentType := http.DetectContentType(data)
	defaultExt, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("неподдерживаемый тип файла: %s", contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = defaultExt
	}

	objectName := fmt.Sprintf("%s/%s%s", photoPrefix, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", fmt.Errorf("не удалось загрузить файл %s: %w", objectName, err)
	}

	s.logger.Debug("фотография загружена", zap.String("object", objectName))

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectName), nil
}

func (s *S3Storage) DeletePhoto(ctx context.Context, photoURL string) error {
	if photoURL == "" {
		return nil
	}

	objectName, err := s.objectFromURL(photoURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("не удалось удалить файл %s: %w", objectName, err)
	}

	return nil
}

// objectFromURL восстанавливает имя объекта из публичного URL бакета.
func (s *S3Storage) objectFromURL(photoURL string) (string, error) {
	parsed, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("некорректный URL файла %q: %w", photoURL, err)
	}

	objectName := strings.TrimPrefix(parsed.Path, "/")
	if objectName == "" || !strings.HasPrefix(objectName, photoPrefix+"/") {
		return "", fmt.Errorf("URL %q не указывает на фотографию", photoURL)
	}

	return objectName, nil
}
