// Package models содержит доменные сущности harvester-а.
package models

import "time"

// Author — автор комментария/ответа/поста.
// Важно:
//   - ID — глобально уникальный идентификатор пользователя площадки;
//   - Nickname/Bio/Region — опциональны, пустая строка означает «не задано»;
//   - две записи с одинаковым Author.ID — независимые копии, склейка
//     выполняется только слоем хранилища (ON CONFLICT по id).
type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Region    string `json:"region,omitempty"`
	AvatarURI string `json:"avatar_uri,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
}

// Comment — комментарий верхнего уровня или ответ.
// Важно:
//   - ID уникален в пределах рабочего набора одного поста;
//   - Parent == nil — корневая запись; иначе — идентификатор другой записи набора
//     (ответа или владеющего комментария);
//   - ParentUser задаётся, только если площадка сообщила, что это ответ на ответ;
//   - ReplyCount имеет смысл только для комментариев верхнего уровня;
//   - Replies — метаданные вложенности (nil во «flat»-представлении).
type Comment struct {
	ID             string
	CreatedAt      time.Time
	Author         Author
	Text           string
	LikesCount     int64
	LikedByCreator bool
	ReplyCount     *int64
	Parent         *string
	ParentUser     *string
	Replies        []Comment
}

// IsRoot сообщает, что у записи нет родителя.
func (c Comment) IsRoot() bool {
	return c.Parent == nil
}

// ParentID возвращает идентификатор родителя или пустую строку для корня.
func (c Comment) ParentID() string {
	if c.Parent == nil {
		return ""
	}

	return *c.Parent
}

// Finding — результат классификации одного текста.
type Finding struct {
	CommentID string
	Text      string
	Matches   []string
}
