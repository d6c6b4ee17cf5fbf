// tiktok — HTTP-клиент площадки: комментарии, ответы, oEmbed поста и медиа.
package tiktok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/pribylovaa/go-comments-harvester/internal/pkg/log"
)

var (
	// ErrUnexpectedStatus — площадка ответила не-2xx статусом.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrDecode — тело ответа не удалось разобрать.
	ErrDecode = errors.New("decode response")
)

const (
	defaultBaseURL      = "https://www.tiktok.com"
	defaultVideoBaseURL = "https://www.tikwm.com"
	defaultPageSize     = 50
	defaultMaxConc      = 6
)

// Options — параметры клиента; нулевые значения заменяются дефолтами.
type Options struct {
	BaseURL       string
	VideoBaseURL  string
	UserAgent     string
	PageSize      int
	MaxConcurrent int
}

// Client реализует service.Feed поверх публичного веб-API площадки.
//
// Ответы на комментарии запрашиваются конкурентно, параллелизм ограничен
// MaxConcurrent. HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
type Client struct {
	client       *http.Client
	baseURL      string
	videoBaseURL string
	userAgent    string
	pageSize     int
	maxConc      int
}

// New создаёт клиент площадки.
func New(client *http.Client, opts Options) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}

	if opts.VideoBaseURL == "" {
		opts.VideoBaseURL = defaultVideoBaseURL
	}

	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConc
	}

	return &Client{
		client:       client,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		videoBaseURL: strings.TrimRight(opts.VideoBaseURL, "/"),
		userAgent:    opts.UserAgent,
		pageSize:     opts.PageSize,
		maxConc:      opts.MaxConcurrent,
	}
}

// Comments постранично загружает комментарии верхнего уровня поста.
// Курсор сдвигается на размер страницы; обход завершается на пустой
// странице или когда has_more != 1.
func (c *Client) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	const op = "tiktok/client/Comments"

	var output []models.Comment
	for cursor := 0; ; cursor += c.pageSize {
		params := url.Values{
			"aweme_id":      {postID},
			"count":         {strconv.Itoa(c.pageSize)},
			"cursor":        {strconv.Itoa(cursor)},
			"os":            {"mac"},
			"region":        {"US"},
			"screen_height": {"900"},
			"screen_width":  {"1440"},
		}

		var page commentPage
		if err := c.getJSON(ctx, c.baseURL+"/api/comment/list/", params, &page); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if len(page.Comments) == 0 {
			break
		}

		for _, raw := range page.Comments {
			output = append(output, formatComment(raw))
		}

		if page.HasMore != 1 {
			break
		}
	}

	return output, nil
}

// Replies загружает ответы на комментарий commentID поста postID.
func (c *Client) Replies(ctx context.Context, postID, commentID string, count int64) ([]models.Comment, error) {
	const op = "tiktok/client/Replies"

	params := url.Values{
		"comment_id": {commentID},
		"count":      {strconv.FormatInt(count, 10)},
		"item_id":    {postID},
	}

	var page commentPage
	if err := c.getJSON(ctx, c.baseURL+"/api/comment/list/reply", params, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	output := make([]models.Comment, 0, len(page.Comments))
	for _, raw := range page.Comments {
		output = append(output, formatReply(raw))
	}

	return output, nil
}

// CommentsWithReplies возвращает все комментарии поста; ответы запрашиваются
// только для комментариев с reply_count > 0 и кладутся плоским списком в Replies.
// Ошибка любого запроса ответов прерывает весь вызов.
func (c *Client) CommentsWithReplies(ctx context.Context, postID string) ([]models.Comment, error) {
	const op = "tiktok/client/CommentsWithReplies"

	comments, err := c.Comments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConc)

	for i := range comments {
		cm := &comments[i]
		if cm.ReplyCount == nil || *cm.ReplyCount <= 0 {
			continue
		}

		g.Go(func() error {
			replies, err := c.Replies(gctx, postID, cm.ID, *cm.ReplyCount)
			if err != nil {
				return err
			}

			cm.Replies = replies
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Debug("comments_fetched",
		slog.String("op", op),
		slog.String("post_id", postID),
		slog.Int("comments", len(comments)),
	)

	return comments, nil
}

// Post получает метаданные поста через oEmbed.
func (c *Client) Post(ctx context.Context, username, postID string) (models.Post, error) {
	const op = "tiktok/client/Post"

	params := url.Values{
		"url": {fmt.Sprintf("%s/@%s/video/%s", c.baseURL, username, postID)},
	}

	var body oembed
	if err := c.getJSON(ctx, c.baseURL+"/oembed", params, &body); err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return formatPost(body), nil
}

// Video скачивает видео поста.
func (c *Client) Video(ctx context.Context, postID string) ([]byte, error) {
	const op = "tiktok/client/Video"

	data, err := c.Resource(ctx, fmt.Sprintf("%s/video/media/wmplay/%s.mp4", c.videoBaseURL, url.PathEscape(postID)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

// Resource скачивает произвольный ресурс (превью, аватар) целиком.
func (c *Client) Resource(ctx context.Context, src string) ([]byte, error) {
	const op = "tiktok/client/Resource"

	resp, err := c.do(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", op, err)
	}

	return data, nil
}

// getJSON выполняет GET с параметрами и декодирует JSON-ответ в dst.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, dst any) error {
	src := endpoint
	if len(params) > 0 {
		src += "?" + params.Encode()
	}

	resp, err := c.do(ctx, src)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return nil
}

// do выполняет GET и проверяет статус; при успехе тело закрывает вызывающий.
func (c *Client) do(ctx context.Context, src string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("new_request: %w", err)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.From(ctx).Warn("http_error",
			slog.String("url", src),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("do: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status=%d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp, nil
}
