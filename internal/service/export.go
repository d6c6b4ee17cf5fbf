package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-comments-harvester/internal/export"
	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/pkg/log"
	"github.com/pribylovaa/go-comments-harvester/internal/reconstruct"
)

// exportComments пишет сохраняемые записи поста в файл.
// flat — ordered как есть; threaded — комментарии верхнего уровня из ответа
// feed, урезанные до ordered, с деревом ответов (reconstruct.Thread).
func (s *Service) exportComments(ctx context.Context, postID string, fetched, ordered []models.Comment) error {
	const op = "service/export/exportComments"

	payload := ordered
	if s.exporter.Format() == export.FormatThreaded {
		payload = reconstruct.Thread(savedRoots(fetched, ordered))
	}

	path, err := s.exporter.Write(postID, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Debug("comments_exported",
		slog.String("op", op),
		slog.String("path", path),
		slog.String("format", string(s.exporter.Format())),
	)

	return nil
}

// savedRoots оставляет в fetched только записи из ordered: комментарии верхнего
// уровня с плоским списком своих ответов. Повтор id учитывается один раз
// (первое вхождение), как во Flatten.
func savedRoots(fetched, ordered []models.Comment) []models.Comment {
	keep := make(map[string]struct{}, len(ordered))
	for _, c := range ordered {
		keep[c.ID] = struct{}{}
	}

	used := make(map[string]struct{}, len(ordered))
	take := func(id string) bool {
		if _, ok := keep[id]; !ok {
			return false
		}
		if _, ok := used[id]; ok {
			return false
		}
		used[id] = struct{}{}

		return true
	}

	var roots []models.Comment
	for _, c := range fetched {
		if !take(c.ID) {
			continue
		}

		var replies []models.Comment
		reconstruct.Walk(c.Replies, func(r models.Comment) bool {
			if take(r.ID) {
				r.Replies = nil
				replies = append(replies, r)
			}

			return true
		})

		c.Replies = replies
		roots = append(roots, c)
	}

	return roots
}
