package horoscoperepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

const objectPrefix = "horoscopes"

var errObjectNotFound = errors.New("object not found")

// objectStore is the slice of an S3 bucket the repository needs.
type objectStore interface {
	put(ctx context.Context, key string, data []byte, contentType string) error
	get(ctx context.Context, key string) ([]byte, error)
}

// ObjectRepository archives bundles as JSON objects under
// horoscopes/{sign}/{period}/{date}/{lang}.json in an S3 compatible bucket
// such as Cloudflare R2 or MinIO.
type ObjectRepository struct {
	store  objectStore
	logger *slog.Logger
}

// ObjectConfig describes the bucket connection.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// NewObjectRepository connects to the bucket described by cfg.
func NewObjectRepository(cfg ObjectConfig, logger *slog.Logger) (*ObjectRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Bucket == "" {
		return nil, errors.New("object storage bucket is required")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	store := &minioStore{client: client, bucket: cfg.Bucket}
	return newObjectRepository(store, logger), nil
}

func newObjectRepository(store objectStore, logger *slog.Logger) *ObjectRepository {
	return &ObjectRepository{store: store, logger: logger.With("component", "horoscope.repo.object")}
}

// Find downloads the bundle for key.
func (r *ObjectRepository) Find(ctx context.Context, key horoscope.Key) (horoscope.Content, bool, error) {
	raw, err := r.store.get(ctx, objectKey(key))
	if errors.Is(err, errObjectNotFound) {
		return horoscope.Content{}, false, nil
	}
	if err != nil {
		return horoscope.Content{}, false, err
	}
	content, err := decodeContent(raw)
	if err != nil {
		r.logger.Warn("discarding unreadable horoscope object", "key", objectKey(key), "error", err)
		return horoscope.Content{}, false, nil
	}
	return content, true, nil
}

// Save uploads the bundle, overwriting any previous object.
func (r *ObjectRepository) Save(ctx context.Context, content horoscope.Content) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode horoscope: %w", err)
	}
	return r.store.put(ctx, objectKey(content.Key()), raw, "application/json")
}

var _ horoscope.Repository = (*ObjectRepository)(nil)

func objectKey(key horoscope.Key) string {
	return path.Join(objectPrefix, key.Sign.Key(), string(key.Period), key.Date, string(key.Language)+".json")
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func (s *minioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

func (s *minioStore) put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		DisableMultipart: true,
	})
	return err
}

func (s *minioStore) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioError(err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateMinioError(err)
	}
	return data, nil
}

func translateMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return errObjectNotFound
	}
	return err
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
