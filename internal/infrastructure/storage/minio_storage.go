package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/medisupply/authenticator-api/internal/application/ports"
	"github.com/medisupply/authenticator-api/pkg/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ ports.LogoStorage = (*MinioStorage)(nil)

// logoURLExpiry vigencia de las URLs presignadas de lectura.
const logoURLExpiry = 7 * 24 * time.Hour

// MinioStorage almacena logos institucionales en un bucket S3-compatible.
type MinioStorage struct {
	client *minio.Client
	bucket string
	folder string
}

// NewMinioStorage construye el cliente y garantiza que el bucket exista.
func NewMinioStorage(ctx context.Context, cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente de storage: %w", err)
	}

	s := &MinioStorage{client: client, bucket: cfg.Bucket, folder: cfg.Folder}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("verificar bucket %s: %w", s.bucket, err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("crear bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// UploadLogo sube el logo y devuelve una URL presignada de lectura.
func (s *MinioStorage) UploadLogo(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error) {
	objectPath := path.Join(s.folder, objectName)
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("subir logo %s: %w", objectName, err)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectPath, logoURLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("generar URL del logo %s: %w", objectName, err)
	}
	return u.String(), nil
}
