package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/pkg/log"
)

// uploadMedia выгружает видео, превью и аватары авторов поста.
// Аватары качаются параллельно (cfg.Upload.AvatarWorkers); авторы без
// ссылки на аватар пропускаются. Первая ошибка прерывает выгрузку.
func (s *Service) uploadMedia(ctx context.Context, post models.Post, users []models.Author) error {
	const op = "service/media/uploadMedia"

	video, err := s.feed.Video(ctx, post.ID)
	if err != nil {
		return fmt.Errorf("%s: video: %w", op, err)
	}

	if err := s.media.PutVideo(ctx, post.ID, video); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if post.Thumbnail != "" {
		thumb, err := s.feed.Resource(ctx, post.Thumbnail)
		if err != nil {
			return fmt.Errorf("%s: thumbnail: %w", op, err)
		}

		if err := s.media.PutThumbnail(ctx, post.ID, thumb); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.Upload.AvatarWorkers, 1))

	uploaded := 0
	for _, u := range users {
		if u.AvatarURL == "" {
			continue
		}
		uploaded++

		u := u
		g.Go(func() error {
			data, err := s.feed.Resource(gctx, u.AvatarURL)
			if err != nil {
				return fmt.Errorf("avatar %s: %w", u.ID, err)
			}

			return s.media.PutAvatar(gctx, u.ID, u.AvatarURL, data)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Debug("media_uploaded",
		slog.String("op", op),
		slog.Int("video_bytes", len(video)),
		slog.Int("avatars", uploaded),
	)

	return nil
}

// Purge удаляет все объекты бакета медиа и возвращает их число.
func (s *Service) Purge(ctx context.Context) (int, error) {
	const op = "service/media/Purge"

	if s.media == nil {
		return 0, fmt.Errorf("%s: %w", op, ErrUploadDisabled)
	}

	keys, err := s.media.ListKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	removed, err := s.media.RemoveKeys(ctx, keys)
	if err != nil {
		return removed, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("bucket_purged",
		slog.String("op", op),
		slog.Int("listed", len(keys)),
		slog.Int("removed", removed),
	)

	return removed, nil
}
