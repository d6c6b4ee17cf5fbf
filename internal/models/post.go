package models

import "time"

// Post — пост (видео), к которому относится рабочий набор комментариев.
// Поля соответствуют элементу входного JSON-файла со списком постов.
type Post struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       Author `json:"author"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format,omitempty"`
	Duration     int    `json:"duration"`
	LikesCount   int64  `json:"likes_count"`
	PlaysCount   int64  `json:"plays_count"`
	RepostsCount int64  `json:"reposts_count"`
	SharesCount  int64  `json:"shares_count"`
	Created      int64  `json:"created"`
	Thumbnail    string `json:"thumbnail,omitempty"`
}

// CreatedAt возвращает время публикации поста в UTC (Created — unix-секунды).
func (p Post) CreatedAt() time.Time {
	return time.Unix(p.Created, 0).UTC()
}
