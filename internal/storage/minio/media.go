package minio

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"

	mclient "github.com/minio/minio-go/v7"
)

const (
	// removeBatchSize — предел ключей в одном DeleteObjects (ограничение S3 API).
	removeBatchSize = 1000

	defaultImageType = "image/jpeg"
)

// PutVideo сохраняет видео поста под ключом video/<postID>.
func (s *MediaStorage) PutVideo(ctx context.Context, postID string, data []byte) error {
	const op = "storage/minio/media/PutVideo"

	if err := s.put(ctx, path.Join("video", postID), "video/mp4", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PutThumbnail сохраняет превью поста под ключом thumbnail/<postID>.
func (s *MediaStorage) PutThumbnail(ctx context.Context, postID string, data []byte) error {
	const op = "storage/minio/media/PutThumbnail"

	if err := s.put(ctx, path.Join("thumbnail", postID), "image/png", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PutAvatar сохраняет аватар пользователя под ключом avatar/<userID>.
// Content-Type определяется по расширению avatarURL.
func (s *MediaStorage) PutAvatar(ctx context.Context, userID, avatarURL string, data []byte) error {
	const op = "storage/minio/media/PutAvatar"

	if err := s.put(ctx, path.Join("avatar", userID), contentTypeFromURL(avatarURL), data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListKeys возвращает ключи всех объектов бакета (рекурсивно).
func (s *MediaStorage) ListKeys(ctx context.Context) ([]string, error) {
	const op = "storage/minio/media/ListKeys"

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, mclient.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, obj.Err)
		}

		keys = append(keys, obj.Key)
	}

	return keys, nil
}

// RemoveKeys удаляет объекты пачками по removeBatchSize.
// Возвращает число удалённых объектов; первая ошибка прерывает удаление.
func (s *MediaStorage) RemoveKeys(ctx context.Context, keys []string) (int, error) {
	const op = "storage/minio/media/RemoveKeys"

	removed := 0
	for start := 0; start < len(keys); start += removeBatchSize {
		end := min(start+removeBatchSize, len(keys))
		batch := keys[start:end]

		objects := make(chan mclient.ObjectInfo, len(batch))
		for _, k := range batch {
			objects <- mclient.ObjectInfo{Key: k}
		}
		close(objects)

		failed := 0
		var firstErr error
		for rerr := range s.client.RemoveObjects(ctx, s.bucket, objects, mclient.RemoveObjectsOptions{}) {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("key %q: %w", rerr.ObjectName, rerr.Err)
			}
		}

		removed += len(batch) - failed
		if firstErr != nil {
			return removed, fmt.Errorf("%s: %w", op, firstErr)
		}
	}

	return removed, nil
}

func (s *MediaStorage) put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), mclient.PutObjectOptions{
		ContentType: contentType,
	})

	return err
}

// contentTypeFromURL определяет медиатип по расширению пути URL.
// Query-параметры игнорируются; неизвестное расширение -> image/jpeg.
func contentTypeFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return defaultImageType
	}

	if ct := mime.TypeByExtension(ext); strings.HasPrefix(ct, "image/") {
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = ct[:i]
		}
		return ct
	}

	return defaultImageType
}
