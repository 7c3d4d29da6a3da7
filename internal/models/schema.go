package models

import "gorm.io/gorm"

// All lists every table owned by the service, in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &GroupPlayer{}, &GroupRequest{}, &LinkToken{}}
}

// SetupJoinTables registers the explicit membership model for Group.Players.
// It must run before AutoMigrate and before any Players association query.
func SetupJoinTables(db *gorm.DB) error {
	return db.SetupJoinTable(&Group{}, "Players", &GroupPlayer{})
}
