package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"storefront/internal/config"
	"storefront/pkg/utils"
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

const (
	FolderPaymentProofs = "payment_proofs"
	FolderPlanImages    = "plan_images"
)

type StoredObject struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

type StorageService interface {
	// UploadImage stores data under folder/<uuid>.<ext> after sniffing it as an image.
	UploadImage(ctx context.Context, folder string, data []byte) (*StoredObject, error)
	Open(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
	MaxUploadBytes() int64
}

type storageService struct {
	fs        afs.Service
	baseURL   string
	publicURL string
	maxBytes  int64
}

func NewStorageService(cfg *config.Config) StorageService {
	return newStorageService(afs.New(), cfg.StorageBaseURL, cfg.PublicAssetURL, cfg.MaxUploadBytes)
}

func newStorageService(fs afs.Service, baseURL, publicURL string, maxBytes int64) *storageService {
	return &storageService{
		fs:        fs,
		baseURL:   strings.TrimRight(baseURL, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
	}
}

func (s *storageService) MaxUploadBytes() int64 { return s.maxBytes }

func (s *storageService) UploadImage(ctx context.Context, folder string, data []byte) (*StoredObject, error) {
	if len(data) == 0 {
		return nil, utils.ErrUnsupportedFile
	}
	if int64(len(data)) > s.maxBytes {
		return nil, utils.ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	if !allowedImageTypes[contentType] {
		return nil, utils.ErrUnsupportedFile
	}

	key := path.Join(folder, uuid.NewString()+mtype.Extension())
	if err := s.fs.Upload(ctx, url.Join(s.baseURL, key), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	return &StoredObject{
		Key:         key,
		URL:         s.publicURL + "/" + key,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *storageService) Open(ctx context.Context, key string) ([]byte, string, error) {
	key, ok := cleanKey(key)
	if !ok {
		return nil, "", utils.ErrAssetNotFound
	}

	location := url.Join(s.baseURL, key)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", key, err)
	}
	if !exists {
		return nil, "", utils.ErrAssetNotFound
	}

	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", key, err)
	}
	return data, mimetype.Detect(data).String(), nil
}

func (s *storageService) Delete(ctx context.Context, key string) error {
	key, ok := cleanKey(key)
	if !ok {
		return utils.ErrAssetNotFound
	}

	location := url.Join(s.baseURL, key)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.fs.Delete(ctx, location)
}

// cleanKey only admits "<folder>/<name>" keys inside the known folders.
func cleanKey(key string) (string, bool) {
	key = path.Clean(strings.TrimPrefix(key, "/"))
	dir, name := path.Split(key)
	switch strings.TrimSuffix(dir, "/") {
	case FolderPaymentProofs, FolderPlanImages:
	default:
		return "", false
	}
	if name == "" || strings.HasPrefix(name, ".") {
		return "", false
	}
	return key, true
}
