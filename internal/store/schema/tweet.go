package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Tweet represents the tweets table.
// Content fields are written once; only the engagement counters change afterwards.
type Tweet struct {
	// TweetID is the platform status id
	TweetID int64 `gorm:"column:tweet_id;primaryKey;autoIncrement:false"`
	// UserID references the author; not a foreign key so tweets never depend on user ingestion order
	UserID int64  `gorm:"column:user_id;not null;index:idx_tweets_user_id"`
	Text   string `gorm:"column:text;not null;type:text"`
	// Place is the raw place object when the status carried one
	Place  datatypes.JSON `gorm:"column:place"`
	Lang   string         `gorm:"column:lang;type:text;index:idx_tweets_lang"`
	Source string         `gorm:"column:source;type:text"`
	// TweetedAt is the status creation time reported by the platform
	TweetedAt time.Time `gorm:"column:tweeted_at;not null;index:idx_tweets_tweeted_at"`

	RetweetCount  int `gorm:"column:retweet_count;not null;default:0"`
	FavoriteCount int `gorm:"column:favorite_count;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`

	// Associations
	Hashtags []Hashtag   `gorm:"foreignKey:TweetID;references:TweetID;constraint:OnDelete:CASCADE"`
	Words    []TweetWord `gorm:"foreignKey:TweetID;references:TweetID;constraint:OnDelete:CASCADE"`
	Mentions []Mention   `gorm:"foreignKey:TweetID;references:TweetID;constraint:OnDelete:CASCADE"`
	URLs     []URLData   `gorm:"foreignKey:TweetID;references:TweetID;constraint:OnDelete:CASCADE"`
	Geotag   *Geotag     `gorm:"foreignKey:TweetID;references:TweetID;constraint:OnDelete:CASCADE"`
	Media    []Media     `gorm:"foreignKey:TweetID;references:TweetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Tweet model
func (Tweet) TableName() string {
	return "tweets"
}
