package dto

import (
	"time"

	"extend-xmlrpc/models"
)

// PostStruct is one entry of a getPosts response.
// Fields are flattened from models.Post plus computed values (permalink,
// comment/ping flags, terms, authors). Variant specific members are pointers
// or slices left nil by the variants that do not send them.
type PostStruct struct {
	DateCreated    time.Time            `xmlrpc:"dateCreated" json:"dateCreated"`
	DateModified   time.Time            `xmlrpc:"dateModified" json:"dateModified"`
	UserID         string               `xmlrpc:"userid" json:"userid"`
	PostID         int64                `xmlrpc:"postid" json:"postid"`
	Description    string               `xmlrpc:"description" json:"description"`
	Title          string               `xmlrpc:"title" json:"title"`
	Link           string               `xmlrpc:"link" json:"link"`
	PermaLink      string               `xmlrpc:"permaLink" json:"permaLink"`
	Categories     any                  `xmlrpc:"categories" json:"categories"`
	Excerpt        string               `xmlrpc:"mt_excerpt" json:"mt_excerpt"`
	TextMore       string               `xmlrpc:"mt_text_more" json:"mt_text_more"`
	AllowComments  int                  `xmlrpc:"mt_allow_comments" json:"mt_allow_comments"`
	AllowPings     int                  `xmlrpc:"mt_allow_pings" json:"mt_allow_pings"`
	Slug           string               `xmlrpc:"wp_slug" json:"wp_slug"`
	Password       string               `xmlrpc:"wp_password" json:"wp_password"`
	AuthorID       int64                `xmlrpc:"wp_author_id" json:"wp_author_id"`
	DateCreatedGMT time.Time            `xmlrpc:"date_created_gmt" json:"date_created_gmt"`
	Status         string               `xmlrpc:"post_status" json:"post_status"`
	CustomFields   []models.CustomField `xmlrpc:"custom_fields" json:"custom_fields"`
	Keywords       *string              `xmlrpc:"mt_keywords,omitempty" json:"mt_keywords,omitempty"`
	AuthorDisplay  *string              `xmlrpc:"wp_author_display_name,omitempty" json:"wp_author_display_name,omitempty"`
	Publications   []string             `xmlrpc:"publications,omitempty" json:"publications,omitempty"`
	Authors        []AuthorStruct       `xmlrpc:"wp_authors,omitempty" json:"wp_authors,omitempty"`
}

// CategoryStruct is a category with its parent term id (0 for top level).
type CategoryStruct struct {
	Name   string `xmlrpc:"name" json:"name"`
	Parent int64  `xmlrpc:"parent" json:"parent"`
}

// AuthorStruct exposes the public user fields of a post author.
type AuthorStruct struct {
	ID          int64  `xmlrpc:"ID" json:"ID"`
	Login       string `xmlrpc:"user_login" json:"user_login"`
	Nicename    string `xmlrpc:"user_nicename" json:"user_nicename"`
	Email       string `xmlrpc:"user_email" json:"user_email"`
	URL         string `xmlrpc:"user_url" json:"user_url"`
	DisplayName string `xmlrpc:"display_name" json:"display_name"`
}

// NewAuthorStruct constructs AuthorStruct from models.User
func NewAuthorStruct(u models.User) AuthorStruct {
	return AuthorStruct{
		ID:          u.ID,
		Login:       u.Login,
		Nicename:    u.Nicename,
		Email:       u.Email,
		URL:         u.URL,
		DisplayName: u.DisplayName,
	}
}
