package models

import "time"

type GroupRequestStatus string

const (
	GroupRequestPending  GroupRequestStatus = "PENDING"
	GroupRequestAccepted GroupRequestStatus = "ACCEPTED"
)

// GroupRequest is a user's proposal to join a group.
type GroupRequest struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	GroupID   uint               `gorm:"not null;uniqueIndex:idx_group_request_pair" json:"groupId"`
	UserID    uint               `gorm:"not null;uniqueIndex:idx_group_request_pair;index" json:"userId"`
	Status    GroupRequestStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`

	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (GroupRequest) TableName() string { return "groups_requests" }
