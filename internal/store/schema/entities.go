package schema

// Mention represents the mentions table
type Mention struct {
	ID      int64 `gorm:"column:id;primaryKey;autoIncrement"`
	TweetID int64 `gorm:"column:tweet_id;not null;index:idx_mentions_tweet_id"`
	// SourceUserID is the author of the tweet
	SourceUserID int64 `gorm:"column:source_user_id;not null"`
	// TargetUserID is the mentioned account
	TargetUserID int64 `gorm:"column:target_user_id;not null;index:idx_mentions_target_user_id"`
}

// TableName specifies the table name for the Mention model
func (Mention) TableName() string {
	return "mentions"
}

// URLData represents the url_data table - expanded URLs linked from a tweet
type URLData struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TweetID int64  `gorm:"column:tweet_id;not null;index:idx_url_data_tweet_id"`
	URL     string `gorm:"column:url;not null;type:text"`
}

// TableName specifies the table name for the URLData model
func (URLData) TableName() string {
	return "url_data"
}

// Geotag represents the geotags table - at most one point per tweet
type Geotag struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	TweetID   int64   `gorm:"column:tweet_id;not null;uniqueIndex:idx_geotags_tweet_id"`
	Latitude  float64 `gorm:"column:latitude;not null"`
	Longitude float64 `gorm:"column:longitude;not null"`
}

// TableName specifies the table name for the Geotag model
func (Geotag) TableName() string {
	return "geotags"
}
