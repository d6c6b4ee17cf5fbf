// export сохраняет комментарии обработанного поста в JSON-файл на диске:
// плоским списком в порядке записи в архив или деревом ответов.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

// Format — форма выгрузки комментариев.
type Format string

const (
	// FormatFlat — все записи одним списком, родитель раньше потомка.
	FormatFlat Format = "flat"
	// FormatThreaded — комментарии верхнего уровня с вложенными ответами.
	FormatThreaded Format = "threaded"
)

var (
	// ErrUnknownFormat — формат выгрузки не поддерживается.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrInvalidPostID — id поста не годится как имя файла.
	ErrInvalidPostID = errors.New("invalid post id")
)

// ParseFormat разбирает формат выгрузки без учёта регистра.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatFlat, FormatThreaded:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Writer пишет файлы <dir>/<post_id>.json.
type Writer struct {
	dir    string
	format Format
}

// New создаёт каталог dir (если его нет) и возвращает Writer.
func New(dir string, format Format) (*Writer, error) {
	const op = "export/export/New"

	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Writer{dir: dir, format: f}, nil
}

// Dir возвращает каталог выгрузки.
func (w *Writer) Dir() string {
	return w.dir
}

// Format возвращает форму выгрузки.
func (w *Writer) Format() Format {
	return w.format
}

// Write сериализует comments и атомарно (временный файл + rename) заменяет
// файл поста. Возвращает путь записанного файла.
func (w *Writer) Write(postID string, comments []models.Comment) (string, error) {
	const op = "export/export/Write"

	if postID == "" || postID != filepath.Base(postID) || strings.HasPrefix(postID, ".") {
		return "", fmt.Errorf("%s: %q: %w", op, postID, ErrInvalidPostID)
	}

	data, err := encode(comments)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path := filepath.Join(w.dir, postID+".json")

	tmp, err := os.CreateTemp(w.dir, postID+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

// comment — JSON-представление записи с ключами, как у площадки после форматирования.
type comment struct {
	Author         models.Author `json:"author"`
	ID             string        `json:"id"`
	Created        int64         `json:"created"`
	LikesCount     int64         `json:"likes_count"`
	ReplyCount     *int64        `json:"reply_count,omitempty"`
	Text           string        `json:"text"`
	LikedByCreator bool          `json:"liked_by_creator"`
	Parent         *string       `json:"parent,omitempty"`
	ParentUser     *string       `json:"parent_user,omitempty"`
	Replies        []comment     `json:"replies,omitempty"`
}

func toJSON(c models.Comment) comment {
	out := comment{
		Author:         c.Author,
		ID:             c.ID,
		Created:        c.CreatedAt.Unix(),
		LikesCount:     c.LikesCount,
		ReplyCount:     c.ReplyCount,
		Text:           c.Text,
		LikedByCreator: c.LikedByCreator,
		Parent:         c.Parent,
		ParentUser:     c.ParentUser,
	}

	if len(c.Replies) > 0 {
		out.Replies = make([]comment, len(c.Replies))
		for i, r := range c.Replies {
			out.Replies[i] = toJSON(r)
		}
	}

	return out
}

// encode — отступ в 4 пробела, не-ASCII и HTML-символы как есть.
func encode(comments []models.Comment) ([]byte, error) {
	items := make([]comment, len(comments))
	for i, c := range comments {
		items[i] = toJSON(c)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(items); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
