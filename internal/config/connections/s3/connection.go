package s3

import (
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ConnectionInfo struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Location  string
	UseSSL    bool
}

// S3 wraps the minio client with the bucket and the environment-scoped key
// prefix (e.g. media/production) all objects are stored under.
type S3 struct {
	Client   *minio.Client
	Bucket   string
	Location string
}

func NewConnection(info ConnectionInfo) (*S3, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(info.Endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(info.AccessKey, info.SecretKey, ""),
		Secure: info.UseSSL,
		Region: info.Region,
	})
	if err != nil {
		return nil, err
	}

	return &S3{
		Client:   client,
		Bucket:   info.Bucket,
		Location: strings.Trim(info.Location, "/"),
	}, nil
}

// ObjectKey prefixes a media-relative key with the environment location.
func (s *S3) ObjectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.Location == "" {
		return key
	}
	return s.Location + "/" + key
}

func (s *S3) EnsureBucket(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}
