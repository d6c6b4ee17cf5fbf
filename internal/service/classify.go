package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/pkg/log"
	"github.com/pribylovaa/go-comments-harvester/internal/reconstruct"
)

// Classify прогоняет политику по тексту каждого комментария и вложенных ответов.
//
// Поведение:
//   - обход в прямом порядке (комментарий, затем его ответы на любой глубине);
//   - тексты классифицируются параллельно, не более cfg.Detection.Workers одновременно;
//   - результат содержит только релевантные тексты в порядке обхода;
//   - каждый релевантный текст логируется.
//
// Ошибки: ошибка контекста, если ctx отменён до завершения.
func (s *Service) Classify(ctx context.Context, comments []models.Comment) ([]models.Finding, error) {
	const op = "service/classify/Classify"

	var items []models.Comment
	reconstruct.Walk(comments, func(c models.Comment) bool {
		items = append(items, c)
		return true
	})

	matches := make([][]string, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.Detection.Workers, 1))

	for i, c := range items {
		if gctx.Err() != nil {
			break
		}

		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			matches[i] = s.policy.Detect(c.Text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg := log.From(ctx)

	var findings []models.Finding
	for i, c := range items {
		if len(matches[i]) == 0 {
			continue
		}

		findings = append(findings, models.Finding{CommentID: c.ID, Text: c.Text, Matches: matches[i]})
		lg.Info("relevant_text",
			slog.String("op", op),
			slog.String("comment_id", c.ID),
			slog.Any("matches", matches[i]),
			slog.String("text", c.Text),
		)
	}

	s.metrics.RelevantTexts(len(findings))

	return findings, nil
}
