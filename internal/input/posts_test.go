package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePosts = `[
  {
    "id": "7400000000000000001",
    "title": "cat compilation",
    "author": {"id": "u1", "username": "alice"},
    "width": 576,
    "height": 1024,
    "format": "mp4",
    "duration": 15,
    "likes_count": 10,
    "plays_count": 100,
    "reposts_count": 1,
    "shares_count": 2,
    "created": 1700000000,
    "thumbnail": "http://cdn/t.jpg"
  },
  {"id": "", "title": "broken"},
  {"id": "7400000000000000002", "title": "dogs", "author": {"id": "u2", "username": "bob"}}
]`

func TestReadPosts(t *testing.T) {
	t.Parallel()

	posts, err := ReadPosts(strings.NewReader(samplePosts))
	require.NoError(t, err)
	require.Len(t, posts, 2)

	p := posts[0]
	require.Equal(t, "7400000000000000001", p.ID)
	require.Equal(t, "cat compilation", p.Title)
	require.Equal(t, "u1", p.Author.ID)
	require.Equal(t, "alice", p.Author.Username)
	require.Equal(t, 576, p.Width)
	require.Equal(t, 1024, p.Height)
	require.Equal(t, "mp4", p.Format)
	require.Equal(t, 15, p.Duration)
	require.Equal(t, int64(100), p.PlaysCount)
	require.Equal(t, int64(1700000000), p.Created)
	require.Equal(t, int64(1700000000), p.CreatedAt().Unix())
	require.Equal(t, "http://cdn/t.jpg", p.Thumbnail)

	require.Equal(t, "7400000000000000002", posts[1].ID)
}

func TestReadPosts_BadJSON(t *testing.T) {
	t.Parallel()

	_, err := ReadPosts(strings.NewReader(`{"id": "not an array"}`))
	require.Error(t, err)
}

func TestLoadPosts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "video_items.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePosts), 0o600))

	posts, err := LoadPosts(path)
	require.NoError(t, err)
	require.Len(t, posts, 2)
}

func TestLoadPosts_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadPosts("")
	require.ErrorIs(t, err, ErrEmptyPath)

	_, err = LoadPosts(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
