package models

// MySQLDateFormat is the layout of the post_date style columns.
// Dates are stored as wall-clock strings so that lexical order is date order.
const MySQLDateFormat = "2006-01-02 15:04:05"

// ZeroDate is what the blog stores for dates it never set (e.g. post_date_gmt of drafts).
const ZeroDate = "0000-00-00 00:00:00"

// Post statuses
const (
	StatusPublish   = "publish"
	StatusFuture    = "future"
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPrivate   = "private"
	StatusTrash     = "trash"
	StatusAutoDraft = "auto-draft"
	StatusInherit   = "inherit"
)

// Post is a blog content record (article, page, custom type)
// Collection: posts
type Post struct {
	ID            int64         `bson:"_id" json:"id" yaml:"id"`
	AuthorID      int64         `bson:"post_author" json:"post_author" yaml:"post_author"`
	Date          string        `bson:"post_date" json:"post_date" yaml:"post_date"`
	DateGMT       string        `bson:"post_date_gmt" json:"post_date_gmt" yaml:"post_date_gmt"`
	Modified      string        `bson:"post_modified" json:"post_modified" yaml:"post_modified"`
	ModifiedGMT   string        `bson:"post_modified_gmt" json:"post_modified_gmt" yaml:"post_modified_gmt"`
	Content       string        `bson:"post_content" json:"post_content" yaml:"post_content"`
	Title         string        `bson:"post_title" json:"post_title" yaml:"post_title"`
	Excerpt       string        `bson:"post_excerpt" json:"post_excerpt" yaml:"post_excerpt"`
	Status        string        `bson:"post_status" json:"post_status" yaml:"post_status"`
	CommentStatus string        `bson:"comment_status" json:"comment_status" yaml:"comment_status"`
	PingStatus    string        `bson:"ping_status" json:"ping_status" yaml:"ping_status"`
	Password      string        `bson:"post_password" json:"post_password" yaml:"post_password"`
	Name          string        `bson:"post_name" json:"post_name" yaml:"post_name"`
	Parent        int64         `bson:"post_parent" json:"post_parent" yaml:"post_parent"`
	Type          string        `bson:"post_type" json:"post_type" yaml:"post_type"`
	TermIDs       []int64       `bson:"term_ids" json:"term_ids" yaml:"term_ids"`
	CoauthorIDs   []int64       `bson:"coauthor_ids,omitempty" json:"coauthor_ids,omitempty" yaml:"coauthor_ids,omitempty"`
	Meta          []CustomField `bson:"meta" json:"meta" yaml:"meta"`
}

// CustomField is a key/value pair attached to a post (post meta).
type CustomField struct {
	ID    int64  `bson:"meta_id" json:"id" yaml:"id" xmlrpc:"id"`
	Key   string `bson:"meta_key" json:"key" yaml:"key" xmlrpc:"key"`
	Value string `bson:"meta_value" json:"value" yaml:"value" xmlrpc:"value"`
}

// IsPublished reports whether the post is publicly reachable under its pretty permalink.
func (p Post) IsPublished() bool {
	return p.Status == StatusPublish || p.Status == StatusPrivate
}
