// Package twitter decodes v1.1 status payloads and talks to the REST API.
package twitter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
)

// TimeLayout is the created_at layout used by the v1.1 API
const TimeLayout = time.RubyDate

// User is the v1.1 user object
type User struct {
	ID             int64  `json:"id"`
	ScreenName     string `json:"screen_name"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	TimeZone       string `json:"time_zone"`
	FollowersCount int    `json:"followers_count"`
	FriendsCount   int    `json:"friends_count"`
	StatusesCount  int    `json:"statuses_count"`
	CreatedAt      string `json:"created_at"`
	GeoEnabled     bool   `json:"geo_enabled"`
	Verified       bool   `json:"verified"`
}

// Point is a GeoJSON-ish point. Order of the pair depends on the field it came from.
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Entities is the v1.1 entities object
type Entities struct {
	Hashtags []struct {
		Text string `json:"text"`
	} `json:"hashtags"`
	UserMentions []struct {
		ID         int64  `json:"id"`
		ScreenName string `json:"screen_name"`
	} `json:"user_mentions"`
	URLs []struct {
		URL         string `json:"url"`
		ExpandedURL string `json:"expanded_url"`
	} `json:"urls"`
	Media []Media `json:"media"`
}

// Media is a v1.1 media entity
type Media struct {
	MediaURL      string `json:"media_url"`
	MediaURLHTTPS string `json:"media_url_https"`
	Type          string `json:"type"`
}

// ExtendedTweet carries the untruncated text and entities of a streamed status longer than 140 characters
type ExtendedTweet struct {
	FullText         string    `json:"full_text"`
	Entities         Entities  `json:"entities"`
	ExtendedEntities *Entities `json:"extended_entities"`
}

// Status is the v1.1 status object, reduced to the fields the indexer stores
type Status struct {
	ID            int64           `json:"id"`
	Text          string          `json:"text"`
	FullText      string          `json:"full_text"`
	Lang          string          `json:"lang"`
	Source        string          `json:"source"`
	CreatedAt     string          `json:"created_at"`
	RetweetCount  int             `json:"retweet_count"`
	FavoriteCount int             `json:"favorite_count"`
	User          *User           `json:"user"`
	Place         json.RawMessage `json:"place"`
	// Geo holds [latitude, longitude]
	Geo *Point `json:"geo"`
	// Coordinates holds [longitude, latitude]
	Coordinates      *Point    `json:"coordinates"`
	Entities         Entities  `json:"entities"`
	ExtendedEntities *Entities `json:"extended_entities"`
	// ExtendedTweet is only present on truncated stream statuses
	ExtendedTweet *ExtendedTweet `json:"extended_tweet"`
}

// DecodeStatus decodes one feed message.
// Messages that are not statuses (delete notices, limit notices, keep-alives) decode to nil.
func DecodeStatus(data []byte) (*domain.Status, error) {
	var raw Status
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	if raw.ID == 0 || raw.User == nil {
		return nil, nil
	}

	return raw.ToStatus()
}

// ToStatus maps the wire object onto the domain status
func (s *Status) ToStatus() (*domain.Status, error) {
	if s.User == nil {
		return nil, fmt.Errorf("status %d has no user", s.ID)
	}

	createdAt, err := parseTime(s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("status %d: %w", s.ID, err)
	}
	author, err := s.User.ToAuthor()
	if err != nil {
		return nil, fmt.Errorf("status %d: %w", s.ID, err)
	}

	text := s.Text
	if s.FullText != "" {
		text = s.FullText
	}
	entities, extended := s.Entities, s.ExtendedEntities
	if s.ExtendedTweet != nil {
		if s.ExtendedTweet.FullText != "" {
			text = s.ExtendedTweet.FullText
		}
		entities, extended = s.ExtendedTweet.Entities, s.ExtendedTweet.ExtendedEntities
	}

	status := &domain.Status{
		ID:            s.ID,
		Author:        *author,
		Text:          text,
		Lang:          s.Lang,
		Source:        s.Source,
		CreatedAt:     createdAt,
		RetweetCount:  s.RetweetCount,
		FavoriteCount: s.FavoriteCount,
		Place:         normalizePlace(s.Place),
		Coordinates:   s.coordinates(),
	}

	for _, h := range entities.Hashtags {
		status.Hashtags = append(status.Hashtags, h.Text)
	}
	for _, m := range entities.UserMentions {
		status.Mentions = append(status.Mentions, domain.Mention{UserID: m.ID, ScreenName: m.ScreenName})
	}
	for _, u := range entities.URLs {
		url := u.ExpandedURL
		if url == "" {
			url = u.URL
		}
		if url != "" {
			status.URLs = append(status.URLs, url)
		}
	}

	// extended_entities lists every attachment; entities only the first
	media := entities.Media
	if extended != nil && len(extended.Media) > 0 {
		media = extended.Media
	}
	for _, m := range media {
		url := m.MediaURLHTTPS
		if url == "" {
			url = m.MediaURL
		}
		status.Media = append(status.Media, domain.MediaEntity{URL: url, Type: m.Type})
	}

	return status, nil
}

func (s *Status) coordinates() *domain.Coordinates {
	if s.Geo != nil && len(s.Geo.Coordinates) == 2 {
		return &domain.Coordinates{Latitude: s.Geo.Coordinates[0], Longitude: s.Geo.Coordinates[1]}
	}
	if s.Coordinates != nil && len(s.Coordinates.Coordinates) == 2 {
		return &domain.Coordinates{Latitude: s.Coordinates.Coordinates[1], Longitude: s.Coordinates.Coordinates[0]}
	}
	return nil
}

// ToAuthor maps the wire user onto the domain author
func (u *User) ToAuthor() (*domain.Author, error) {
	createdAt, err := parseTime(u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}

	return &domain.Author{
		ID:             u.ID,
		ScreenName:     u.ScreenName,
		Name:           u.Name,
		Location:       u.Location,
		Description:    u.Description,
		TimeZone:       u.TimeZone,
		FollowersCount: u.FollowersCount,
		FriendsCount:   u.FriendsCount,
		StatusesCount:  u.StatusesCount,
		CreatedAt:      createdAt,
		GeoEnabled:     u.GeoEnabled,
		Verified:       u.Verified,
	}, nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created_at %q: %w", value, err)
	}
	return t.UTC(), nil
}

// normalizePlace drops an explicit JSON null
func normalizePlace(place json.RawMessage) json.RawMessage {
	if len(place) == 0 || string(place) == "null" {
		return nil
	}
	return place
}
