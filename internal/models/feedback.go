package models

import "time"

// Feedback is a rating and comment left by a user.
type Feedback struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Rating     int       `json:"rating" gorm:"not null"`
	Feedback   string    `json:"feedback" gorm:"type:text;not null"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	DatePosted time.Time `json:"date_posted" gorm:"not null;<-:create"`
	Author     User      `json:"author" gorm:"foreignKey:UserID"`
}
