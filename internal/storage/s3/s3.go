// Package s3 stores post images and profile pictures in an S3 compatible
// bucket. Clients upload and download directly through presigned URLs; the
// server never proxies image bytes.
package s3

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultPresignTTL is how long an issued upload or download URL stays valid
const DefaultPresignTTL = 240 * time.Second

// Config configures the bucket. A known Region lets presigning skip the
// bucket location round trip.
type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Region     string
	UseSSL     bool
	PresignTTL time.Duration
}

// Storage implements posts.MediaStorage and users.ProfileImageStorage
type Storage struct {
	client *minio.Client
	cfg    Config
}

// New creates a storage client. It does not contact the endpoint.
func New(cfg Config) (*Storage, error) {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = DefaultPresignTTL
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Storage{client: client, cfg: cfg}, nil
}

// EnsureBucket creates the bucket on first start
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// postPrefix is the key prefix holding one post's images
func postPrefix(ownerID, postID string) string {
	return path.Join(ownerID, "post", postID) + "/"
}

func postImageKey(ownerID, postID, filename string) string {
	return postPrefix(ownerID, postID) + filename
}

func profileImageKey(userID string) string {
	return path.Join(userID, "public", "profile-image", "image")
}

// RequestUploadTargets presigns one PUT per filename, in the given order
func (s *Storage) RequestUploadTargets(ctx context.Context, ownerID, postID string, filenames []string) ([]string, error) {
	urls := make([]string, 0, len(filenames))
	for _, name := range filenames {
		u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, postImageKey(ownerID, postID, name), s.cfg.PresignTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign upload for %q: %w", name, err)
		}
		urls = append(urls, u.String())
	}
	return urls, nil
}

// RequestDownloadTargets presigns one GET per declared filename, in the
// post's order. Images that were declared but never uploaded are skipped.
func (s *Storage) RequestDownloadTargets(ctx context.Context, ownerID, postID string, filenames []string) ([]string, error) {
	urls := make([]string, 0, len(filenames))
	for _, name := range filenames {
		key := postImageKey(ownerID, postID, name)
		ok, err := s.objectExists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to stat post image %q: %w", name, err)
		}
		if !ok {
			continue
		}
		u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to presign download for %q: %w", name, err)
		}
		urls = append(urls, u.String())
	}
	return urls, nil
}

func (s *Storage) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, err
}

// ProfileImageUploadURL presigns a PUT for the user's profile picture
func (s *Storage) ProfileImageUploadURL(ctx context.Context, userID string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, profileImageKey(userID), s.cfg.PresignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign profile upload: %w", err)
	}
	return u.String(), nil
}

// ProfileImageURL presigns a GET for the profile picture, or returns nil when
// none was uploaded
func (s *Storage) ProfileImageURL(ctx context.Context, userID string) (*string, error) {
	key := profileImageKey(userID)
	ok, err := s.objectExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat profile image: %w", err)
	}
	if !ok {
		return nil, nil
	}
	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to presign profile image: %w", err)
	}
	url := u.String()
	return &url, nil
}
