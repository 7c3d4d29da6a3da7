package models

import "time"

// Group is a coordination unit owned by a single master user.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Chronic     string    `gorm:"not null" json:"chronic"`
	Schedule    string    `gorm:"not null" json:"schedule"`
	Location    string    `gorm:"not null" json:"location"`
	Master      uint      `gorm:"not null;index" json:"master"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	MasterUser *User  `gorm:"foreignKey:Master" json:"masterUser,omitempty"`
	Players    []User `gorm:"many2many:group_players" json:"players,omitempty"`
}

// GroupPlayer is a membership row of the group_players join table.
type GroupPlayer struct {
	GroupID   uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
