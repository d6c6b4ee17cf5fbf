// storage определяет контракты архива (PostgreSQL) и медиа-хранилища (S3) harvester-а.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

var (
	// ErrForeignKey — запись ссылается на отсутствующего автора, пост или родителя.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrNotFound — объект отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

// Archive описывает сохранение результатов обработки поста.
type Archive interface {
	// ProcessedPostIDs возвращает идентификаторы уже архивированных постов.
	ProcessedPostIDs(ctx context.Context) ([]string, error)
	// SaveHarvest в одной транзакции сохраняет авторов, пост и комментарии.
	// Комментарии вставляются в переданном порядке (родитель раньше потомка);
	// повторные идентификаторы игнорируются (ON CONFLICT DO NOTHING).
	// Нарушение внешнего ключа — ErrForeignKey, транзакция откатывается.
	SaveHarvest(ctx context.Context, post models.Post, users []models.Author, comments []models.Comment) error
	Close()
}

// Media описывает выгрузку медиа поста в объектное хранилище.
// Ключи: video/<post>, thumbnail/<post>, avatar/<user>.
type Media interface {
	PutVideo(ctx context.Context, postID string, data []byte) error
	PutThumbnail(ctx context.Context, postID string, data []byte) error
	// PutAvatar определяет Content-Type по расширению avatarURL (по умолчанию image/jpeg).
	PutAvatar(ctx context.Context, userID, avatarURL string, data []byte) error
	// ListKeys возвращает ключи всех объектов бакета.
	ListKeys(ctx context.Context) ([]string, error)
	// RemoveKeys удаляет объекты пачками по 1000 и возвращает число удалённых.
	RemoveKeys(ctx context.Context, keys []string) (int, error)
}
