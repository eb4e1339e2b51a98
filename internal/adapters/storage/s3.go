package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	s3conn "github.com/thsteixeira/precatorios/internal/config/connections/s3"
	"github.com/thsteixeira/precatorios/internal/ports"
)

const presignExpiry = 2 * time.Hour

// S3Storage keeps attachments in the configured bucket under the
// environment-scoped prefix.
type S3Storage struct {
	conn *s3conn.S3
}

func NewS3Storage(conn *s3conn.S3) *S3Storage {
	return &S3Storage{conn: conn}
}

func (s *S3Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (ports.StoredObject, error) {
	objKey := s.conn.ObjectKey(key)
	log.Printf("[STORAGE][S3][PUT] bucket=%q key=%q size=%d", s.conn.Bucket, objKey, size)

	info, err := s.conn.Client.PutObject(ctx, s.conn.Bucket, objKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("[STORAGE][S3][ERR] put: %v", err)
		return ports.StoredObject{}, fmt.Errorf("s3 put: %w", err)
	}
	return ports.StoredObject{Key: key, Size: info.Size, ContentType: contentType}, nil
}

func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, ports.StoredObject, error) {
	objKey := s.conn.ObjectKey(key)

	st, err := s.conn.Client.StatObject(ctx, s.conn.Bucket, objKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, ports.StoredObject{}, fmt.Errorf("s3 stat: %w", err)
	}
	obj, err := s.conn.Client.GetObject(ctx, s.conn.Bucket, objKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, ports.StoredObject{}, fmt.Errorf("s3 get: %w", err)
	}
	return obj, ports.StoredObject{Key: key, Size: st.Size, ContentType: st.ContentType}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	objKey := s.conn.ObjectKey(key)
	log.Printf("[STORAGE][S3][DELETE] bucket=%q key=%q", s.conn.Bucket, objKey)
	return s.conn.Client.RemoveObject(ctx, s.conn.Bucket, objKey, minio.RemoveObjectOptions{})
}

func (s *S3Storage) PresignDownload(ctx context.Context, key, filename string) (string, error) {
	objKey := s.conn.ObjectKey(key)

	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", filename))

	u, err := s.conn.Client.PresignedGetObject(ctx, s.conn.Bucket, objKey, presignExpiry, params)
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}
	return u.String(), nil
}
