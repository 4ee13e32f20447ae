package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"extend-xmlrpc/models"
)

// Permalinker builds canonical post URLs from the site URL and the permalink
// structure, e.g. "/%year%/%monthnum%/%postname%/". An empty structure means
// plain "?p=ID" links.
type Permalinker struct {
	siteURL   string
	structure string
}

func NewPermalinker(siteURL, structure string) *Permalinker {
	return &Permalinker{
		siteURL:   strings.TrimRight(siteURL, "/"),
		structure: structure,
	}
}

func (p *Permalinker) Permalink(post *models.Post) string {
	if post == nil {
		return ""
	}
	if !p.pretty(post) {
		return p.siteURL + "/" + p.plainQuery(post)
	}
	switch post.Type {
	case "post", "":
		return p.siteURL + p.expand(post)
	case "page":
		return p.siteURL + "/" + post.Name + "/"
	default:
		return p.siteURL + "/" + post.Type + "/" + post.Name + "/"
	}
}

// pretty links only exist for posts that are public and have a slug
func (p *Permalinker) pretty(post *models.Post) bool {
	return p.structure != "" && post.IsPublished() && post.Name != ""
}

func (p *Permalinker) plainQuery(post *models.Post) string {
	id := strconv.FormatInt(post.ID, 10)
	switch post.Type {
	case "post", "":
		return "?p=" + id
	case "page":
		return "?page_id=" + id
	default:
		return "?post_type=" + post.Type + "&p=" + id
	}
}

func (p *Permalinker) expand(post *models.Post) string {
	date, err := time.Parse(models.MySQLDateFormat, post.Date)
	if err != nil {
		date = time.Time{}
	}
	r := strings.NewReplacer(
		"%year%", fmt.Sprintf("%04d", date.Year()),
		"%monthnum%", fmt.Sprintf("%02d", int(date.Month())),
		"%day%", fmt.Sprintf("%02d", date.Day()),
		"%hour%", fmt.Sprintf("%02d", date.Hour()),
		"%minute%", fmt.Sprintf("%02d", date.Minute()),
		"%second%", fmt.Sprintf("%02d", date.Second()),
		"%postname%", post.Name,
		"%post_id%", strconv.FormatInt(post.ID, 10),
	)
	path := r.Replace(p.structure)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
