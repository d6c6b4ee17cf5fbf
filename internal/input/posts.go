// input читает входные данные прогона: список постов из JSON-файла.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

// ErrEmptyPath — путь к файлу постов не задан.
var ErrEmptyPath = errors.New("empty posts path")

// LoadPosts читает JSON-массив постов из файла path.
func LoadPosts(path string) ([]models.Post, error) {
	const op = "input/posts/LoadPosts"

	if path == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyPath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	posts, err := ReadPosts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return posts, nil
}

// ReadPosts декодирует JSON-массив постов; записи без id отбрасываются.
func ReadPosts(r io.Reader) ([]models.Post, error) {
	var raw []models.Post
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	posts := raw[:0]
	for _, p := range raw {
		if p.ID == "" {
			continue
		}

		posts = append(posts, p)
	}

	return posts, nil
}
