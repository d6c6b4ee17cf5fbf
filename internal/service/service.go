// service содержит пакетный сценарий harvester-а: отбор постов,
// сбор и упорядочивание комментариев, архивирование, выгрузка медиа и классификация.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-comments-harvester/internal/config"
	"github.com/pribylovaa/go-comments-harvester/internal/detection"
	"github.com/pribylovaa/go-comments-harvester/internal/export"
	"github.com/pribylovaa/go-comments-harvester/internal/metrics"
	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные аргументы (например, пустой id поста).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUploadDisabled — операция требует объектного хранилища, а оно не настроено.
	ErrUploadDisabled = errors.New("upload disabled")
)

// Feed — источник комментариев и медиа поста.
type Feed interface {
	// CommentsWithReplies возвращает комментарии поста с плоскими ответами в Replies.
	CommentsWithReplies(ctx context.Context, postID string) ([]models.Comment, error)
	Video(ctx context.Context, postID string) ([]byte, error)
	Resource(ctx context.Context, url string) ([]byte, error)
}

// Service — пакетный сценарий harvester-а.
// media может быть nil: тогда выгрузка медиа и Purge недоступны.
// exporter может быть nil: тогда комментарии в файлы не выгружаются.
type Service struct {
	archive  storage.Archive
	media    storage.Media
	feed     Feed
	policy   *detection.Policy
	exporter *export.Writer
	metrics  *metrics.Metrics
	cfg      config.Config
}

// New создает новый экземпляр Service.
func New(archive storage.Archive, media storage.Media, feed Feed, policy *detection.Policy, exporter *export.Writer, m *metrics.Metrics, cfg config.Config) *Service {
	return &Service{
		archive:  archive,
		media:    media,
		feed:     feed,
		policy:   policy,
		exporter: exporter,
		metrics:  m,
		cfg:      cfg,
	}
}
