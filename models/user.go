package models

// Roles
const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
	RoleAuthor        = "author"
	RoleContributor   = "contributor"
	RoleSubscriber    = "subscriber"
)

// User is a blog account
// Collection: users
type User struct {
	ID           int64  `bson:"_id" json:"id" yaml:"id"`
	Login        string `bson:"user_login" json:"user_login" yaml:"user_login"`
	PasswordHash string `bson:"user_pass" json:"-" yaml:"user_pass"`
	Nicename     string `bson:"user_nicename" json:"user_nicename" yaml:"user_nicename"`
	Email        string `bson:"user_email" json:"user_email" yaml:"user_email"`
	URL          string `bson:"user_url" json:"user_url" yaml:"user_url"`
	DisplayName  string `bson:"display_name" json:"display_name" yaml:"display_name"`
	Role         string `bson:"role" json:"role" yaml:"role"`
}
