package models

import "time"

// RetweetContent is stored as the content of every retweet post.
const RetweetContent = "retweet"

// Post is an original post, or a retweet when RetweetID is set. A retweet
// always points at an original post, never at another retweet.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_posts_user_retweet,priority:1"`
	RetweetID *uint     `json:"retweet_id" gorm:"uniqueIndex:idx_posts_user_retweet,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Retweet  *Post     `json:"retweet,omitempty" gorm:"foreignKey:RetweetID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Images   []Image   `json:"images,omitempty" gorm:"foreignKey:PostID"`
	Likers   []User    `json:"likers,omitempty" gorm:"many2many:likes"`
	Hashtags []Hashtag `json:"hashtags,omitempty" gorm:"many2many:post_hashtags"`
}

// IsRetweet reports whether the post is a retweet of another post.
func (p *Post) IsRetweet() bool {
	return p.RetweetID != nil
}

// Like is the join row behind Post.Likers.
type Like struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	PostID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// Comment belongs to one post and one author.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Image references an already stored file by path or URL.
type Image struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Src       string    `json:"src" gorm:"type:varchar(200);not null"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
