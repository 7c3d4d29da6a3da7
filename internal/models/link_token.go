package models

import "time"

// LinkToken is a single-use password reset token mailed to a user.
type LinkToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// ExpiredAt reports whether the token is older than ttl at now.
func (t *LinkToken) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.CreatedAt) > ttl
}
