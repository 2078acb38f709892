package schema

// Media represents the media table - captured attachments of a tweet.
// Exactly one of Blob (zlib compressed bytes) or LocalFilename is set, depending on the storage mode.
type Media struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement"`
	TweetID    int64 `gorm:"column:tweet_id;not null;uniqueIndex:idx_media_tweet_id_index,priority:1"`
	MediaIndex int   `gorm:"column:media_index;not null;uniqueIndex:idx_media_tweet_id_index,priority:2"`

	// NativeFilename is the basename of the source URL
	NativeFilename string  `gorm:"column:native_filename;type:text"`
	MimeType       string  `gorm:"column:mime_type;type:text"`
	Blob           []byte  `gorm:"column:blob"`
	LocalFilename  *string `gorm:"column:local_filename;type:text"`
}

// TableName specifies the table name for the Media model
func (Media) TableName() string {
	return "media"
}
