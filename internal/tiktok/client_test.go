package tiktok

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// rawJSON — утилита сборки комментария в формате площадки.
func rawJSON(cid string, replies int64, extra map[string]any) map[string]any {
	m := map[string]any{
		"cid":                 cid,
		"create_time":         1700000000,
		"digg_count":          3,
		"reply_comment_total": replies,
		"text":                "text " + cid,
		"is_author_digged":    false,
		"user": map[string]any{
			"uid":          "u-" + cid,
			"unique_id":    "user_" + cid,
			"nickname":     "Nick",
			"signature":    "bio",
			"region":       "US",
			"avatar_uri":   "uri",
			"avatar_thumb": map[string]any{"url_list": []string{"http://cdn/a.png"}},
		},
	}

	for k, v := range extra {
		m[k] = v
	}

	return m
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// TestComments_Pagination — курсор сдвигается на размер страницы до has_more != 1.
func TestComments_Pagination(t *testing.T) {
	t.Parallel()

	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/comment/list/", r.URL.Path)
		require.Equal(t, "post-1", r.URL.Query().Get("aweme_id"))
		require.Equal(t, "2", r.URL.Query().Get("count"))
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		cursor := r.URL.Query().Get("cursor")
		cursors = append(cursors, cursor)

		switch cursor {
		case "0":
			writeJSON(t, w, map[string]any{"has_more": 1, "comments": []any{rawJSON("c1", 0, nil), rawJSON("c2", 1, nil)}})
		case "2":
			writeJSON(t, w, map[string]any{"has_more": 0, "comments": []any{rawJSON("c3", 0, nil)}})
		default:
			t.Errorf("unexpected cursor %q", cursor)
		}
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL, UserAgent: "test-agent", PageSize: 2})

	got, err := c.Comments(context.Background(), "post-1")
	require.NoError(t, err)
	require.Equal(t, []string{"0", "2"}, cursors)
	require.Len(t, got, 3)

	first := got[0]
	require.Equal(t, "c1", first.ID)
	require.True(t, first.IsRoot())
	require.NotNil(t, first.ReplyCount)
	require.Equal(t, int64(0), *first.ReplyCount)
	require.Equal(t, "u-c1", first.Author.ID)
	require.Equal(t, "user_c1", first.Author.Username)
	require.Equal(t, "http://cdn/a.png", first.Author.AvatarURL)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), first.CreatedAt)
	require.Equal(t, int64(3), first.LikesCount)
}

// TestComments_EmptyPageStops — пустая страница завершает обход даже при has_more == 1.
func TestComments_EmptyPageStops(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, map[string]any{"has_more": 1, "comments": []any{}})
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL})

	got, err := c.Comments(context.Background(), "p")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, int32(1), calls.Load())
}

// TestComments_UnexpectedStatus — не-2xx превращается в ErrUnexpectedStatus.
func TestComments_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL})

	_, err := c.Comments(context.Background(), "p")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	require.Contains(t, err.Error(), "status=429")
}

// TestComments_BadJSON — мусор в теле -> ErrDecode.
func TestComments_BadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL})

	_, err := c.Comments(context.Background(), "p")
	require.ErrorIs(t, err, ErrDecode)
}

// TestCommentsWithReplies — ответы запрашиваются только для reply_count > 0
// и раскладываются плоско; ответ на ответ получает Parent/ParentUser.
func TestCommentsWithReplies(t *testing.T) {
	t.Parallel()

	var replyCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/comment/list/":
			writeJSON(t, w, map[string]any{"has_more": 0, "comments": []any{
				rawJSON("c1", 2, nil),
				rawJSON("c2", 0, nil),
			}})
		case "/api/comment/list/reply":
			replyCalls.Add(1)
			require.Equal(t, "c1", r.URL.Query().Get("comment_id"))
			require.Equal(t, "post-1", r.URL.Query().Get("item_id"))
			require.Equal(t, "2", r.URL.Query().Get("count"))
			writeJSON(t, w, map[string]any{"comments": []any{
				rawJSON("r1", 0, map[string]any{"reply_id": "c1", "reply_to_reply_id": "0", "reply_to_userid": ""}),
				rawJSON("r2", 0, map[string]any{"reply_id": "c1", "reply_to_reply_id": "r1", "reply_to_userid": "u-r1"}),
			}})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL, MaxConcurrent: 2})

	got, err := c.CommentsWithReplies(context.Background(), "post-1")
	require.NoError(t, err)
	require.Equal(t, int32(1), replyCalls.Load())
	require.Len(t, got, 2)
	require.Empty(t, got[1].Replies)

	replies := got[0].Replies
	require.Len(t, replies, 2)

	require.Equal(t, "c1", replies[0].ParentID())
	require.Nil(t, replies[0].ParentUser)
	require.Nil(t, replies[0].ReplyCount)

	require.Equal(t, "r1", replies[1].ParentID())
	require.NotNil(t, replies[1].ParentUser)
	require.Equal(t, "u-r1", *replies[1].ParentUser)
}

// TestCommentsWithReplies_ReplyFailure — ошибка любого запроса ответов прерывает вызов.
func TestCommentsWithReplies_ReplyFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/comment/list/reply" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		comments := make([]any, 0, 5)
		for i := 0; i < 5; i++ {
			comments = append(comments, rawJSON("c"+strconv.Itoa(i), 1, nil))
		}
		writeJSON(t, w, map[string]any{"has_more": 0, "comments": comments})
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL})

	_, err := c.CommentsWithReplies(context.Background(), "p")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

// TestPost_OEmbed — метаданные поста из oEmbed.
func TestPost_OEmbed(t *testing.T) {
	t.Parallel()

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oembed", r.URL.Path)
		require.Equal(t, srvURL+"/@alice/video/42", r.URL.Query().Get("url"))
		writeJSON(t, w, map[string]any{
			"embed_product_id": "42",
			"title":            "cats",
			"author_unique_id": "alice",
			"author_name":      "Alice",
			"thumbnail_width":  720,
			"thumbnail_height": 1280,
			"thumbnail_url":    "http://cdn/t.jpg",
		})
	}))
	defer srv.Close()
	srvURL = srv.URL

	c := New(srv.Client(), Options{BaseURL: srv.URL})

	post, err := c.Post(context.Background(), "alice", "42")
	require.NoError(t, err)
	require.Equal(t, "42", post.ID)
	require.Equal(t, "cats", post.Title)
	require.Equal(t, "alice", post.Author.Username)
	require.Equal(t, "Alice", post.Author.Nickname)
	require.Equal(t, 720, post.Width)
	require.Equal(t, 1280, post.Height)
	require.Equal(t, "http://cdn/t.jpg", post.Thumbnail)
}

// TestVideo_AndResource — бинарные загрузки.
func TestVideo_AndResource(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/video/media/wmplay/42.mp4":
			_, _ = w.Write([]byte("video-bytes"))
		case "/img.png":
			_, _ = w.Write([]byte("png-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.Client(), Options{BaseURL: srv.URL, VideoBaseURL: srv.URL})

	video, err := c.Video(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, []byte("video-bytes"), video)

	img, err := c.Resource(context.Background(), srv.URL+"/img.png")
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), img)

	_, err = c.Resource(context.Background(), srv.URL+"/missing")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

// TestNew_Defaults — нулевые опции заменяются дефолтами.
func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := New(nil, Options{})
	require.NotNil(t, c.client)
	require.Equal(t, defaultBaseURL, c.baseURL)
	require.Equal(t, defaultVideoBaseURL, c.videoBaseURL)
	require.Equal(t, defaultPageSize, c.pageSize)
	require.Equal(t, defaultMaxConc, c.maxConc)
}
