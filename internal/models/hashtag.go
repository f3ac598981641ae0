package models

import "time"

// MaxHashtagLength is the longest hashtag name, in runes, that is stored.
const MaxHashtagLength = 20

// Hashtag names are stored lowercased and without the leading '#'.
type Hashtag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(20);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// PostHashtag is the join row behind Post.Hashtags.
type PostHashtag struct {
	PostID    uint `gorm:"primaryKey;autoIncrement:false"`
	HashtagID uint `gorm:"primaryKey;autoIncrement:false;index"`
}
