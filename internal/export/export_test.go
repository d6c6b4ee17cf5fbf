package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

// Тесты выгрузки комментариев (export.go).
//
// Проверяем:
//  - разбор формата;
//  - ключи JSON и вложенность ответов;
//  - перезапись файла поста и отсутствие временных файлов;
//  - отказ для id, которые нельзя использовать как имя файла.

func strPtr(s string) *string { return &s }

func sample() []models.Comment {
	var two int64 = 2

	return []models.Comment{{
		ID:         "c1",
		CreatedAt:  time.Unix(1700000000, 0).UTC(),
		Author:     models.Author{ID: "a", Username: "alice", AvatarURL: "http://cdn/a.png"},
		Text:       "кот & <b>",
		LikesCount: 5,
		ReplyCount: &two,
		Replies: []models.Comment{{
			ID:         "r1",
			CreatedAt:  time.Unix(1700000100, 0).UTC(),
			Author:     models.Author{ID: "b", Username: "bob"},
			Text:       "reply",
			Parent:     strPtr("c1"),
			ParentUser: strPtr("a"),
		}},
	}}
}

// TestParseFormat — регистр и пробелы не важны, неизвестный формат — ошибка.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat(" Threaded ")
	require.NoError(t, err)
	require.Equal(t, FormatThreaded, f)

	f, err = ParseFormat("flat")
	require.NoError(t, err)
	require.Equal(t, FormatFlat, f)

	_, err = ParseFormat("tree")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = New(t.TempDir(), Format("tree"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

// TestWrite_Threaded — файл <dir>/<post_id>.json с вложенными ответами и ключами площадки.
func TestWrite_Threaded(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir, FormatThreaded)
	require.NoError(t, err)
	require.Equal(t, FormatThreaded, w.Format())

	path, err := w.Write("p1", sample())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "p1.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "кот & <b>")
	require.Contains(t, string(raw), "\n    {")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)

	c := got[0]
	require.Equal(t, "c1", c["id"])
	require.EqualValues(t, 1700000000, c["created"])
	require.EqualValues(t, 2, c["reply_count"])
	require.Equal(t, "alice", c["author"].(map[string]any)["username"])
	require.NotContains(t, c, "parent")

	replies := c["replies"].([]any)
	require.Len(t, replies, 1)
	r := replies[0].(map[string]any)
	require.Equal(t, "c1", r["parent"])
	require.Equal(t, "a", r["parent_user"])
	require.NotContains(t, r, "reply_count")
	require.NotContains(t, r, "replies")
}

// TestWrite_Overwrites — повторная выгрузка заменяет файл, временных файлов не остаётся.
func TestWrite_Overwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(dir, FormatFlat)
	require.NoError(t, err)

	_, err = w.Write("p1", sample())
	require.NoError(t, err)

	path, err := w.Write("p1", nil)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(string(raw)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

// TestWrite_InvalidPostID — id с разделителями пути или ведущей точкой отклоняются.
func TestWrite_InvalidPostID(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), FormatFlat)
	require.NoError(t, err)

	for _, id := range []string{"", "../p1", "a/b", ".hidden", ".."} {
		_, err := w.Write(id, nil)
		require.ErrorIs(t, err, ErrInvalidPostID, id)
	}
}
