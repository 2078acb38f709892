package schema

import "time"

// User represents the users table - one row per platform account, profile fields overwritten on re-observation
type User struct {
	// UserID is the platform user id
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	// Username is the account handle (screen name)
	Username string `gorm:"column:username;type:text;index:idx_users_username"`
	// Name is the display name
	Name        string `gorm:"column:name;type:text"`
	Location    string `gorm:"column:location;type:text"`
	Description string `gorm:"column:description;type:text"`

	NumFollowers int `gorm:"column:num_followers;not null;default:0"`
	NumFriends   int `gorm:"column:num_friends;not null;default:0"`
	NumTweets    int `gorm:"column:num_tweets;not null;default:0"`

	// AccountCreatedAt is when the account was registered on the platform; set once
	AccountCreatedAt time.Time `gorm:"column:account_created_at"`
	TimeZone         string    `gorm:"column:time_zone;type:text"`
	GeoEnabled       bool      `gorm:"column:geo_enabled;not null;default:false"`
	Verified         bool      `gorm:"column:verified;not null;default:false"`

	// LastUpdated is refreshed on every write
	LastUpdated time.Time `gorm:"column:last_updated;not null"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
