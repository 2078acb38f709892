package schema

// HashtagLexicon represents the hashtag_lexicon table - normalized hashtag text to a dense id.
// Rows are append-only; the unique index on text is what makes concurrent interning safe.
type HashtagLexicon struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Text string `gorm:"column:text;not null;type:text;uniqueIndex:idx_hashtag_lexicon_text"`
}

// TableName specifies the table name for the HashtagLexicon model
func (HashtagLexicon) TableName() string {
	return "hashtag_lexicon"
}

// TweetLexicon represents the tweet_lexicon table - vocabulary words to a dense id
type TweetLexicon struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Text string `gorm:"column:text;not null;type:text;uniqueIndex:idx_tweet_lexicon_text"`
}

// TableName specifies the table name for the TweetLexicon model
func (TweetLexicon) TableName() string {
	return "tweet_lexicon"
}

// Hashtag represents the hashtags table - one row per hashtag entity of a tweet
type Hashtag struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	TweetID   int64 `gorm:"column:tweet_id;not null;index:idx_hashtags_tweet_id"`
	HashtagID int64 `gorm:"column:hashtag_id;not null;index:idx_hashtags_hashtag_id"`

	Lexicon *HashtagLexicon `gorm:"foreignKey:HashtagID;references:ID"`
}

// TableName specifies the table name for the Hashtag model
func (Hashtag) TableName() string {
	return "hashtags"
}

// TweetWord represents the tweet_words table - one row per token of a tweet's text, in order
type TweetWord struct {
	ID      int64 `gorm:"column:id;primaryKey;autoIncrement"`
	TweetID int64 `gorm:"column:tweet_id;not null;index:idx_tweet_words_tweet_id"`
	WordID  int64 `gorm:"column:word_id;not null;index:idx_tweet_words_word_id"`

	Lexicon *TweetLexicon `gorm:"foreignKey:WordID;references:ID"`
}

// TableName specifies the table name for the TweetWord model
func (TweetWord) TableName() string {
	return "tweet_words"
}
