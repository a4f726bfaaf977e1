package post

import (
	domainerr "bandarcms/internal/domain/errors"
	"net/url"
	"regexp"
	"strings"
	"time"
)

type Type string

const (
	TypeArticle Type = "Article"
	TypePoster  Type = "Poster"
	TypeVideo   Type = "Video"
)

func Types() []Type {
	return []Type{TypeArticle, TypePoster, TypeVideo}
}

func (t Type) Known() bool {
	switch t {
	case TypeArticle, TypePoster, TypeVideo:
		return true
	}
	return false
}

// TimeFormat is the storage timestamp format. Lexicographic order on these
// stamps is chronological order, which the listing splice relies on.
const TimeFormat = "2006-01-02 15:04:05"

// Record is one post's metadata, keyed by slug in the store. JSON field
// names match the on-disk metadata file, which predates this code.
type Record struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	PostType    Type   `json:"post_type"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	ImageURL    string `json:"image_url"`
	Series      string `json:"series"`
	YouTubeID   string `json:"youtube_id"`
	Created     string `json:"created_date"`
	Modified    string `json:"modified_date"`
	Published   bool   `json:"published"`
	ViewCount   int    `json:"view_count"`
	FileHash    string `json:"file_hash"`
	Scanned     bool   `json:"indexed_from_file"`
}

func (r *Record) Normalize() {
	r.Slug = strings.TrimSpace(r.Slug)
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Series = strings.TrimSpace(r.Series)
	r.YouTubeID = strings.TrimSpace(r.YouTubeID)
	if r.ViewCount < 0 {
		r.ViewCount = 0
	}
}

func (r Record) CreatedTime() time.Time {
	t, err := time.ParseInLocation(TimeFormat, r.Created, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

func ValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

func ValidImageURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ValidateAuthored checks the constraints enforced at the authoring
// boundary. Scanned records are accepted as-is and never pass through here.
func (r Record) ValidateAuthored() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(r.Title) == "" {
		ve.Add("title", "must not be empty")
	}
	if !r.PostType.Known() {
		ve.Add("post_type", "must be Article, Poster or Video")
	}
	if strings.TrimSpace(r.Description) == "" {
		ve.Add("description", "must not be empty")
	}
	if !ValidImageURL(r.ImageURL) {
		ve.Add("image_url", "must be a valid absolute URL")
	}
	if r.PostType == TypeVideo {
		if r.YouTubeID == "" {
			ve.Add("youtube_id", "required for video posts")
		} else if !ValidVideoID(r.YouTubeID) {
			ve.Add("youtube_id", "must be 11 characters of [a-zA-Z0-9_-]")
		}
	} else if r.YouTubeID != "" && !ValidVideoID(r.YouTubeID) {
		ve.Add("youtube_id", "must be 11 characters of [a-zA-Z0-9_-]")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}
