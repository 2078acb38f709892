package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Author is the user descriptor carried by a status
type Author struct {
	ID             int64
	ScreenName     string
	Name           string
	Location       string
	Description    string
	TimeZone       string
	FollowersCount int
	FriendsCount   int
	StatusesCount  int
	CreatedAt      time.Time
	GeoEnabled     bool
	Verified       bool
}

// Mention is a user mentioned in a status
type Mention struct {
	UserID     int64
	ScreenName string
}

// Coordinates is a point attached to a status
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// MediaEntity is a media attachment referenced by a status
type MediaEntity struct {
	URL  string
	Type string
}

// Status is one post as received from a feed or the REST API
type Status struct {
	ID            int64
	Author        Author
	Text          string
	Lang          string
	Source        string
	CreatedAt     time.Time
	RetweetCount  int
	FavoriteCount int
	Place         json.RawMessage
	Coordinates   *Coordinates
	Hashtags      []string
	Mentions      []Mention
	URLs          []string
	Media         []MediaEntity
}

// HasGeo reports whether the status carried coordinates
func (s *Status) HasGeo() bool {
	return s.Coordinates != nil
}

// LanguageFilter is an allow-list of language codes.
// The zero value allows nothing.
type LanguageFilter struct {
	all   bool
	langs map[string]struct{}
}

// NewLanguageFilter builds a filter from configured codes; "all" accepts every language
func NewLanguageFilter(langs []string) LanguageFilter {
	f := LanguageFilter{langs: make(map[string]struct{}, len(langs))}
	for _, l := range langs {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if l == LanguageWildcard {
			f.all = true
		}
		f.langs[l] = struct{}{}
	}
	return f
}

// Allows reports whether a status in lang passes the filter
func (f LanguageFilter) Allows(lang string) bool {
	if f.all {
		return true
	}
	_, ok := f.langs[strings.ToLower(lang)]
	return ok
}

// AcceptsAll reports whether the wildcard is configured
func (f LanguageFilter) AcceptsAll() bool {
	return f.all
}
