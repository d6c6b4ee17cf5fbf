package tiktok

import (
	"time"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

// commentPage — страница /api/comment/list/ и /api/comment/list/reply.
type commentPage struct {
	Comments []rawComment `json:"comments"`
	HasMore  int          `json:"has_more"`
	Cursor   int          `json:"cursor"`
}

// rawComment — комментарий или ответ в формате площадки.
type rawComment struct {
	CID               string  `json:"cid"`
	CreateTime        int64   `json:"create_time"`
	DiggCount         int64   `json:"digg_count"`
	ReplyCommentTotal int64   `json:"reply_comment_total"`
	Text              string  `json:"text"`
	IsAuthorDigged    bool    `json:"is_author_digged"`
	User              rawUser `json:"user"`
	// Поля ниже приходят только у ответов.
	ReplyID        string `json:"reply_id"`
	ReplyToReplyID string `json:"reply_to_reply_id"`
	ReplyToUserID  string `json:"reply_to_userid"`
}

type rawUser struct {
	UID         string `json:"uid"`
	UniqueID    string `json:"unique_id"`
	Nickname    string `json:"nickname"`
	Signature   string `json:"signature"`
	Region      string `json:"region"`
	AvatarURI   string `json:"avatar_uri"`
	AvatarThumb struct {
		URLList []string `json:"url_list"`
	} `json:"avatar_thumb"`
}

// oembed — ответ /oembed.
type oembed struct {
	EmbedProductID  string `json:"embed_product_id"`
	Title           string `json:"title"`
	AuthorUniqueID  string `json:"author_unique_id"`
	AuthorName      string `json:"author_name"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
	ThumbnailURL    string `json:"thumbnail_url"`
}

func formatUser(u rawUser) models.Author {
	a := models.Author{
		ID:        u.UID,
		Username:  u.UniqueID,
		Nickname:  u.Nickname,
		Bio:       u.Signature,
		Region:    u.Region,
		AvatarURI: u.AvatarURI,
	}

	if len(u.AvatarThumb.URLList) > 0 {
		a.AvatarURL = u.AvatarThumb.URLList[0]
	}

	return a
}

// formatComment переводит комментарий верхнего уровня в доменную модель.
func formatComment(c rawComment) models.Comment {
	total := c.ReplyCommentTotal

	return models.Comment{
		ID:             c.CID,
		CreatedAt:      time.Unix(c.CreateTime, 0).UTC(),
		Author:         formatUser(c.User),
		Text:           c.Text,
		LikesCount:     c.DiggCount,
		LikedByCreator: c.IsAuthorDigged,
		ReplyCount:     &total,
	}
}

// formatReply переводит ответ в доменную модель.
// Parent — reply_id (владеющий комментарий); если площадка сообщила,
// что это ответ на ответ, Parent = reply_to_reply_id, ParentUser = reply_to_userid.
// Значения "" и "0" считаются отсутствующими.
func formatReply(c rawComment) models.Comment {
	parent := c.ReplyID

	out := models.Comment{
		ID:             c.CID,
		CreatedAt:      time.Unix(c.CreateTime, 0).UTC(),
		Author:         formatUser(c.User),
		Text:           c.Text,
		LikesCount:     c.DiggCount,
		LikedByCreator: c.IsAuthorDigged,
		Parent:         &parent,
	}

	if present(c.ReplyToReplyID) && present(c.ReplyToUserID) {
		toReply, toUser := c.ReplyToReplyID, c.ReplyToUserID
		out.Parent = &toReply
		out.ParentUser = &toUser
	}

	return out
}

func formatPost(o oembed) models.Post {
	return models.Post{
		ID:    o.EmbedProductID,
		Title: o.Title,
		Author: models.Author{
			Username: o.AuthorUniqueID,
			Nickname: o.AuthorName,
		},
		Width:     o.ThumbnailWidth,
		Height:    o.ThumbnailHeight,
		Thumbnail: o.ThumbnailURL,
	}
}

func present(v string) bool {
	return v != "" && v != "0"
}
