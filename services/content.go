package services

import (
	"regexp"
	"strings"
)

var moreTag = regexp.MustCompile(`<!--more.*?-->`)

// ExtendedContent is a post body split at the first <!--more--> marker.
type ExtendedContent struct {
	Main     string
	Extended string
}

// SplitExtended splits content into the teaser and the rest.
// Without a marker the whole body is Main.
func SplitExtended(content string) ExtendedContent {
	loc := moreTag.FindStringIndex(content)
	if loc == nil {
		return ExtendedContent{Main: strings.TrimSpace(content)}
	}
	return ExtendedContent{
		Main:     strings.TrimSpace(content[:loc[0]]),
		Extended: strings.TrimSpace(content[loc[1]:]),
	}
}
