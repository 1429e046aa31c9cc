package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/tonelab-collective/booking/internal/infra/blob"
	"github.com/tonelab-collective/booking/internal/pkg/utils/mime"
	"github.com/tonelab-collective/booking/internal/pkg/utils/path"
)

const (
	ReceiptPrefix = "receipts"
	ImagePrefix   = "public"
)

var (
	ErrInvalidObjectPath = errors.New("invalid object path")
	ErrUnsupportedFile   = errors.New("receipt must be an image or PDF")
	ErrUnsupportedImage  = errors.New("file must be an image")
	ErrFileTooLarge      = errors.New("file too large")
)

// ObjectStore is the subset of the blob store the receipt flow needs.
type ObjectStore interface {
	UploadFormFile(ctx context.Context, prefix string, fh *multipart.FileHeader, accept func(string) bool) (*blob.UploadedMeta, error)
	PresignPut(ctx context.Context, key string, expire time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

var _ ObjectStore = (*blob.S3Deps)(nil)

type UploadTarget struct {
	UploadURL  string `json:"uploadURL"`
	ObjectPath string `json:"objectPath"`
}

type StoredReceipt struct {
	ReceiptPath string `json:"receiptPath"`
	MIME        string `json:"mimeType"`
	SizeB       int64  `json:"size"`
}

type StoredImage struct {
	ObjectPath string `json:"objectPath"`
	MIME       string `json:"mimeType"`
	SizeB      int64  `json:"size"`
}

type ReceiptService interface {
	ReceiptUploadTarget(ctx context.Context) (*UploadTarget, error)
	ImageUploadTarget(ctx context.Context) (*UploadTarget, error)
	Upload(ctx context.Context, fh *multipart.FileHeader) (*StoredReceipt, error)
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (*StoredImage, error)
	ResolveURL(ctx context.Context, objectPath string) (string, error)
}

type receiptService struct {
	store  ObjectStore
	expire func() time.Duration
}

func NewReceiptService(store ObjectStore, expire func() time.Duration) ReceiptService {
	return &receiptService{store: store, expire: expire}
}

// NormalizeObjectPath turns any accepted receipt reference into "/objects/<key>".
func NormalizeObjectPath(raw string) (string, error) {
	key, err := path.ObjectKey(raw)
	if err != nil {
		return "", ErrInvalidObjectPath
	}
	return path.ObjectPath(key), nil
}

func (s *receiptService) target(ctx context.Context, prefix string) (*UploadTarget, error) {
	key := blob.NewKey(prefix)
	u, err := s.store.PresignPut(ctx, key, s.expire())
	if err != nil {
		return nil, err
	}
	return &UploadTarget{UploadURL: u, ObjectPath: path.ObjectPath(key)}, nil
}

func (s *receiptService) ReceiptUploadTarget(ctx context.Context) (*UploadTarget, error) {
	return s.target(ctx, ReceiptPrefix)
}

func (s *receiptService) ImageUploadTarget(ctx context.Context) (*UploadTarget, error) {
	return s.target(ctx, ImagePrefix)
}

func (s *receiptService) Upload(ctx context.Context, fh *multipart.FileHeader) (*StoredReceipt, error) {
	meta, err := s.store.UploadFormFile(ctx, ReceiptPrefix, fh, mime.IsReceipt)
	switch {
	case errors.Is(err, blob.ErrUnsupportedType):
		return nil, ErrUnsupportedFile
	case errors.Is(err, blob.ErrTooLarge):
		return nil, ErrFileTooLarge
	case err != nil:
		return nil, err
	}
	return &StoredReceipt{ReceiptPath: path.ObjectPath(meta.Key), MIME: meta.MIME, SizeB: meta.SizeB}, nil
}

// UploadImage stores a public site image under the image prefix.
func (s *receiptService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (*StoredImage, error) {
	meta, err := s.store.UploadFormFile(ctx, ImagePrefix, fh, mime.IsImage)
	switch {
	case errors.Is(err, blob.ErrUnsupportedType):
		return nil, ErrUnsupportedImage
	case errors.Is(err, blob.ErrTooLarge):
		return nil, ErrFileTooLarge
	case err != nil:
		return nil, err
	}
	return &StoredImage{ObjectPath: path.ObjectPath(meta.Key), MIME: meta.MIME, SizeB: meta.SizeB}, nil
}

func (s *receiptService) ResolveURL(ctx context.Context, objectPath string) (string, error) {
	key, err := path.ObjectKey(objectPath)
	if err != nil {
		return "", ErrInvalidObjectPath
	}
	return s.store.PresignGet(ctx, key, s.expire())
}
