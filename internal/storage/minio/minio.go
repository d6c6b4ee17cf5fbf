// minio предоставляет реализацию storage.Media на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, настраивает
// Secure/creds/region и проверяет наличие целевого бакета.
// media.go — выгрузка видео, превью и аватаров, листинг и пакетное удаление.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-comments-harvester/internal/config"
	"github.com/pribylovaa/go-comments-harvester/internal/storage"
)

// MediaStorage — адаптер MinIO для медиа постов.
type MediaStorage struct {
	bucket string
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg config.S3Config) (*MediaStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist: %w", op, cfg.Bucket, storage.ErrNotFound)
	}

	return &MediaStorage{bucket: cfg.Bucket, client: client}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Media = (*MediaStorage)(nil)
