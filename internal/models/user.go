package models

import "time"

// User represents an account of the social feed.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(30);uniqueIndex;not null" validate:"required,email,max=30"`
	Nickname  string    `json:"nickname" gorm:"type:varchar(30);not null" validate:"required,max=30"`
	Password  string    `json:"-" gorm:"type:varchar(100);not null"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	FollowerID  uint `gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time

	Follower  *User `gorm:"foreignKey:FollowerID"`
	Following *User `gorm:"foreignKey:FollowingID"`
}
