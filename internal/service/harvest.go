package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-comments-harvester/internal/metrics"
	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/pkg/log"
	"github.com/pribylovaa/go-comments-harvester/internal/reconstruct"
)

// Summary — итог прогона.
type Summary struct {
	Total      int
	Selected   int
	Processed  int
	Failed     int
	Saved      int
	Dropped    int
	Duplicates int
	Relevant   int
}

// PostResult — итог обработки одного поста.
type PostResult struct {
	PostID     string
	Saved      int
	Dropped    []string
	Duplicates int
	Findings   []models.Finding
}

// SelectPosts отбирает посты для обработки.
//
// Поведение:
//   - пропускаются уже архивированные посты (Archive.ProcessedPostIDs);
//   - пропускаются посты, в заголовке которых политика не нашла ключевых слов;
//   - повторы id во входе пропускаются (побеждает первый);
//   - порядок входа сохраняется.
func (s *Service) SelectPosts(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	const op = "service/harvest/SelectPosts"

	processed, err := s.archive.ProcessedPostIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{}, len(processed)+len(posts))
	for _, id := range processed {
		seen[id] = struct{}{}
	}

	var selected []models.Post
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}

		if !s.policy.Relevant(p.Title) {
			continue
		}

		selected = append(selected, p)
	}

	log.From(ctx).Info("posts_selected",
		slog.String("op", op),
		slog.Int("input", len(posts)),
		slog.Int("archived", len(processed)),
		slog.Int("selected", len(selected)),
	)

	return selected, nil
}

// ProcessPost обрабатывает один пост целиком.
//
// Шаги:
//  1. комментарии с ответами из Feed;
//  2. Flatten (дубликаты id отбрасываются) и Validate;
//  3. Sequence — родитель раньше потомка, записи без родителя в наборе отбрасываются;
//  4. уникальные авторы (побеждает первое вхождение);
//  5. выгрузка медиа, если включена (до записи в архив, чтобы неудачный пост
//     не считался обработанным);
//  6. выгрузка комментариев в JSON-файл, если задан exporter (по той же причине);
//  7. Archive.SaveHarvest одной транзакцией;
//  8. классификация сохранённых текстов.
//
// Все шаги ограничены таймаутом cfg.Timeouts.Post.
func (s *Service) ProcessPost(ctx context.Context, post models.Post) (PostResult, error) {
	const op = "service/harvest/ProcessPost"

	if post.ID == "" {
		return PostResult{}, fmt.Errorf("%s: empty post id: %w", op, ErrInvalidArgument)
	}

	if s.cfg.Timeouts.Post > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeouts.Post)
		defer cancel()
	}

	ctx = log.With(ctx, slog.String("post_id", post.ID))
	lg := log.From(ctx).With(slog.String("op", op))

	comments, err := s.feed.CommentsWithReplies(ctx, post.ID)
	if err != nil {
		return PostResult{}, fmt.Errorf("%s: fetch: %w", op, err)
	}

	flat, duplicates := reconstruct.Flatten(comments)
	if err := reconstruct.Validate(flat); err != nil {
		return PostResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ordered, dropped := reconstruct.Sequence(flat)
	result := PostResult{PostID: post.ID, Duplicates: duplicates}

	if len(dropped) > 0 {
		for _, d := range dropped {
			result.Dropped = append(result.Dropped, d.ID)
		}

		lg.Warn("records_dropped",
			slog.Int("count", len(dropped)),
			slog.Any("ids", result.Dropped),
		)
	}

	if duplicates > 0 {
		lg.Debug("duplicates_dropped", slog.Int("count", duplicates))
	}

	users := reconstruct.UniqueAuthors(ordered)

	if s.media != nil && s.cfg.Upload.Enabled {
		if err := s.uploadMedia(ctx, post, users); err != nil {
			return PostResult{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if s.exporter != nil {
		if err := s.exportComments(ctx, post.ID, comments, ordered); err != nil {
			return PostResult{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.archive.SaveHarvest(ctx, post, users, ordered); err != nil {
		return PostResult{}, fmt.Errorf("%s: save: %w", op, err)
	}
	result.Saved = len(ordered)

	findings, err := s.Classify(ctx, ordered)
	if err != nil {
		return PostResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result.Findings = findings

	s.metrics.RecordsDropped(len(dropped))
	s.metrics.DuplicatesDropped(duplicates)

	lg.Info("post_processed",
		slog.Int("fetched", len(flat)+duplicates),
		slog.Int("saved", result.Saved),
		slog.Int("users", len(users)),
		slog.Int("dropped", len(dropped)),
		slog.Int("relevant", len(findings)),
	)

	return result, nil
}

// Run отбирает посты и обрабатывает их последовательно.
// Ошибка отдельного поста логируется и учитывается в Summary.Failed, но не
// прерывает прогон. Отмена ctx прерывает прогон с ошибкой контекста.
func (s *Service) Run(ctx context.Context, posts []models.Post) (Summary, error) {
	const op = "service/harvest/Run"

	lg := log.From(ctx)
	summary := Summary{Total: len(posts)}

	selected, err := s.SelectPosts(ctx, posts)
	if err != nil {
		return summary, fmt.Errorf("%s: %w", op, err)
	}
	summary.Selected = len(selected)

	for i := 0; i < len(posts)-len(selected); i++ {
		s.metrics.Post(metrics.ResultSkipped)
	}

	lg.Info("harvest_start",
		slog.String("op", op),
		slog.Int("total", summary.Total),
		slog.Int("selected", summary.Selected),
	)

	for _, post := range selected {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("%s: %w", op, err)
		}

		res, err := s.ProcessPost(ctx, post)
		if err != nil {
			summary.Failed++
			s.metrics.Post(metrics.ResultFailed)
			lg.Error("post_failed",
				slog.String("op", op),
				slog.String("post_id", post.ID),
				slog.String("err", err.Error()),
			)
			continue
		}

		summary.Processed++
		summary.Saved += res.Saved
		summary.Dropped += len(res.Dropped)
		summary.Duplicates += res.Duplicates
		summary.Relevant += len(res.Findings)
		s.metrics.Post(metrics.ResultOK)
	}

	lg.Info("harvest_done",
		slog.String("op", op),
		slog.Int("processed", summary.Processed),
		slog.Int("failed", summary.Failed),
		slog.Int("saved", summary.Saved),
		slog.Int("dropped", summary.Dropped),
		slog.Int("relevant", summary.Relevant),
	)

	return summary, nil
}
