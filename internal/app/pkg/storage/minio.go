package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxImageSize bounds food picture uploads.
const MaxImageSize = 5 << 20

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// MinIO stores food catalog pictures in a single bucket.
type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO connects to endpoint (host:port) and creates the bucket when it
// does not exist yet.
func NewMinIO(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIO, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinIO{
		client:     c,
		bucket:     bucket,
		publicBase: fmt.Sprintf("%s://%s", scheme, endpoint),
	}, nil
}

var nonSafe = regexp.MustCompile(`[^a-z0-9\-_]+`)

// ObjectKey derives "foods/<slug>-<random>.<ext>" from a food name and the
// uploaded file name. It fails for extensions that are not images.
func ObjectKey(foodName, fileName string) (string, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if _, ok := allowedExt[ext]; !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	slug := strings.ToLower(strings.TrimSpace(foodName))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = nonSafe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-_")
	if slug == "" {
		slug = "food"
	}

	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("foods/%s-%s%s", slug, hex.EncodeToString(b), ext), nil
}

// UploadImage streams the multipart file into the bucket and returns its key.
func (m *MinIO) UploadImage(ctx context.Context, fh *multipart.FileHeader, foodName string) (string, error) {
	if fh.Size > MaxImageSize {
		return "", fmt.Errorf("image larger than %d bytes", MaxImageSize)
	}
	key, err := ObjectKey(foodName, fh.Filename)
	if err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = allowedExt[strings.ToLower(path.Ext(fh.Filename))]
	}
	_, err = m.client.PutObject(ctx, m.bucket, key, f, fh.Size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (m *MinIO) DeleteImage(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL is the browser-facing address of key, empty for an empty key.
func (m *MinIO) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	u, err := url.Parse(m.publicBase)
	if err != nil {
		return ""
	}
	u.Path = path.Join(u.Path, m.bucket, key)
	return u.String()
}
