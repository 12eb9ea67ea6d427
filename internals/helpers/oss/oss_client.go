package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medaid_backend/internals/helpers/apperr"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Uploader stores case files and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads"
	PublicBase string
	WebP       WebPOptions
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s)", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: getEnv("ALI_OSS_PUBLIC_BASE"),
		WebP:       DefaultWebPOptionsFromEnv(),
	}, nil
}

/* =======================================================================
   Upload
======================================================================= */

func (s *OSSService) Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if fh == nil {
		return "", apperr.Validation("file is required")
	}
	if fh.Size > MaxUploadSize {
		return "", apperr.Validation(fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, MaxUploadSize/(1024*1024)))
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal("failed to open upload", err)
	}
	defer src.Close()

	prepared, err := PrepareFile(fh.Filename, src, s.WebP)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := s.buildObjectKey(folder, base+prepared.Ext)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(prepared.ContentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(prepared.Data), opts...); err != nil {
		return "", apperr.Internal("failed to store file", err)
	}
	return s.PublicURL(key), nil
}

func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := s.ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if err := s.Bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return apperr.Internal("failed to delete file", err)
	}
	return nil
}

/* =======================================================================
   Public URL & key utils
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return strings.TrimRight(s.PublicBase, "/") + "/" + key
	}
	if s.Endpoint == "" || s.BucketName == "" {
		return ""
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSService) ExtractKeyFromPublicURL(publicURL string) (string, error) {
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}
	if s.PublicBase != "" {
		base := strings.TrimRight(s.PublicBase, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), nil
		}
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

// buildObjectKey → <prefix>/<folder>/<slug>_<yyyymmdd_hhmmss>_<rand6><ext>
func (s *OSSService) buildObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slugify(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if base == "" {
		base = "file"
	}
	name := fmt.Sprintf("%s_%s_%s%s", base, time.Now().Format("20060102_150405"), randHex(3), ext)
	return joinParts(s.Prefix, folder, name)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func joinParts(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

/* =======================================================================
   Disabled storage
======================================================================= */

// DisabledUploader is used when OSS env is absent: every upload fails, so
// submissions without files still go through.
type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, *multipart.FileHeader, string) (string, error) {
	return "", apperr.Internal("file storage is not configured", nil)
}

func (DisabledUploader) DeleteByPublicURL(context.Context, string) error { return nil }

// NewUploaderFromEnv falls back to DisabledUploader when OSS is not configured.
func NewUploaderFromEnv(prefix string) Uploader {
	svc, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		log.Printf("[WARN] file storage disabled: %v", err)
		return DisabledUploader{}
	}
	return svc
}
