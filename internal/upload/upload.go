// Package upload загружает файлы в хранилище бэкенда.
//
// Перед отправкой файл проверяется локально: тип определяется по содержимому
// (mimetype), размер сравнивается с лимитом для своего вида. Ошибка загрузки
// логируется и возвращается вызывающему, поле формы остаётся незаполненным.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"collegeadmin/internal/apiclient"
	"collegeadmin/internal/logger"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Kind — фильтр допустимых типов для поля формы.
type Kind int

const (
	KindAny Kind = iota
	KindImage
	KindVideo
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindPDF:
		return "pdf"
	}
	return "any"
}

func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage
	case "video":
		return KindVideo
	case "pdf":
		return KindPDF
	}
	return KindAny
}

// Limits — максимальные размеры в байтах.
type Limits struct {
	Image int64
	Video int64
	PDF   int64
	Any   int64
}

func DefaultLimits() Limits {
	return Limits{Image: 5 << 20, Video: 10 << 20, PDF: 10 << 20, Any: 10 << 20}
}

func (l Limits) For(k Kind) int64 {
	switch k {
	case KindImage:
		return l.Image
	case KindVideo:
		return l.Video
	case KindPDF:
		return l.PDF
	}
	return l.Any
}

// Max возвращает наибольший лимит, используется как предел разбора multipart.
func (l Limits) Max() int64 {
	m := l.Any
	for _, v := range []int64{l.Image, l.Video, l.PDF} {
		if v > m {
			m = v
		}
	}
	return m
}

type File struct {
	Name string
	Data []byte
}

type Backend interface {
	UploadFile(ctx context.Context, f apiclient.FilePart) (string, error)
	SignedURL(ctx context.Context, fileKey string) (string, error)
}

type Service struct {
	api    Backend
	limits Limits
}

func NewService(api Backend, limits Limits) *Service {
	return &Service{api: api, limits: limits}
}

func (s *Service) Limits() Limits {
	return s.limits
}

// Validate возвращает MIME-тип файла или ошибку с именем файла.
func (s *Service) Validate(f File, kind Kind) (string, error) {
	if len(f.Data) == 0 {
		return "", fmt.Errorf("%s: %w", f.Name, ErrEmptyFile)
	}
	if limit := s.limits.For(kind); limit > 0 && int64(len(f.Data)) > limit {
		return "", fmt.Errorf("%s: %w (max %d MB)", f.Name, ErrTooLarge, limit>>20)
	}

	mt := mimetype.Detect(f.Data)
	ok := true
	switch kind {
	case KindImage:
		ok = strings.HasPrefix(mt.String(), "image/")
	case KindVideo:
		ok = strings.HasPrefix(mt.String(), "video/")
	case KindPDF:
		ok = mt.Is("application/pdf")
	}
	if !ok {
		return "", fmt.Errorf("%s: %w %s, expected %s", f.Name, ErrUnsupportedType, mt.String(), kind)
	}
	return mt.String(), nil
}

// Upload проверяет и загружает один файл, возвращает его URL.
func (s *Service) Upload(ctx context.Context, f File, kind Kind) (string, error) {
	log := logger.WithCtx(ctx)

	mime, err := s.Validate(f, kind)
	if err != nil {
		log.Warn("Загрузка: файл не прошёл проверку", zap.String("file", f.Name), zap.Error(err))
		return "", err
	}

	url, err := s.api.UploadFile(ctx, apiclient.FilePart{Name: f.Name, ContentType: mime, Data: f.Data})
	if err != nil {
		log.Error("Загрузка: ошибка бэкенда", zap.String("file", f.Name), zap.Error(err))
		return "", fmt.Errorf("%s: %w", f.Name, err)
	}

	log.Info("Загрузка: файл загружен",
		zap.String("file", f.Name),
		zap.String("mime", mime),
		zap.Int("size", len(f.Data)),
	)
	return url, nil
}

// UploadAll загружает файлы по одному в порядке передачи. Ошибка одного файла
// не останавливает остальные: возвращаются URL успешных и объединённая ошибка.
func (s *Service) UploadAll(ctx context.Context, files []File, kind Kind) ([]string, error) {
	var (
		urls []string
		errs error
	)
	for _, f := range files {
		url, err := s.Upload(ctx, f, kind)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls, errs
}

func (s *Service) SignedURL(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("file key is required")
	}
	url, err := s.api.SignedURL(ctx, key)
	if err != nil {
		logger.WithCtx(ctx).Error("Загрузка: не удалось получить подписанную ссылку", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return url, nil
}
