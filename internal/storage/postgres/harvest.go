package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/storage"
)

// ProcessedPostIDs возвращает идентификаторы всех архивированных постов.
func (s *Archive) ProcessedPostIDs(ctx context.Context) ([]string, error) {
	const op = "storage/postgres/harvest/ProcessedPostIDs"

	rows, err := s.db.Query(ctx, `SELECT id FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}

	return ids, nil
}

// SaveHarvest сохраняет авторов, пост и комментарии одной транзакцией.
//
// Порядок вставки: users -> post -> comments (в переданном порядке).
// Существующие идентификаторы пропускаются (ON CONFLICT (id) DO NOTHING).
// Колонка parent получает логического родителя записи; если родитель
// не был вставлен раньше, PostgreSQL вернёт foreign_key_violation,
// который отображается в storage.ErrForeignKey.
func (s *Archive) SaveHarvest(ctx context.Context, post models.Post, users []models.Author, comments []models.Comment) error {
	const op = "storage/postgres/harvest/SaveHarvest"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(`
		INSERT INTO users (id, username, nickname, bio, region)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
		`, u.ID, u.Username, nullIfEmpty(u.Nickname), nullIfEmpty(u.Bio), nullIfEmpty(u.Region))
	}

	batch.Queue(`
	INSERT INTO posts (id, title, author, width, height, format, duration,
		likes_count, plays_count, reposts_count, shares_count, created)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (id) DO NOTHING
	`, post.ID, post.Title, post.Author.ID, post.Width, post.Height, nullIfEmpty(post.Format), post.Duration,
		post.LikesCount, post.PlaysCount, post.RepostsCount, post.SharesCount, createdAt(post))

	for _, c := range comments {
		batch.Queue(`
		INSERT INTO comments (id, post, author, created, likes_count, text, liked_by_author, parent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
		`, c.ID, post.ID, c.Author.ID, c.CreatedAt.UTC(), c.LikesCount, c.Text, c.LikedByCreator, c.Parent)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("%s: batch item %d: %w", op, i, mapError(err))
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, mapError(err))
	}

	return nil
}

// mapError переводит ошибки PostgreSQL в ошибки слоя storage.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return fmt.Errorf("%w: %s", storage.ErrForeignKey, pgErr.ConstraintName)
	}

	return err
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}

	return &v
}

// createdAt — время публикации поста или NULL, если оно неизвестно.
func createdAt(p models.Post) *time.Time {
	if p.Created == 0 {
		return nil
	}

	t := p.CreatedAt()
	return &t
}
