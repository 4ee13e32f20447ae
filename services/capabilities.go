package services

import "extend-xmlrpc/models"

// CanEditPost applies the edit_post capability of the built-in roles.
func CanEditPost(user *models.User, post *models.Post) bool {
	if user == nil || post == nil {
		return false
	}
	switch user.Role {
	case models.RoleAdministrator, models.RoleEditor:
		return true
	case models.RoleAuthor:
		return post.Type != "page" && post.AuthorID == user.ID
	case models.RoleContributor:
		if post.Type == "page" || post.AuthorID != user.ID {
			return false
		}
		// 발행(예약 포함)된 글은 더 이상 수정 불가
		return post.Status != models.StatusPublish && post.Status != models.StatusFuture
	default:
		return false
	}
}
