package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"roleplay/api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	openSQLite = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}
	migrateSchema = func(db *gorm.DB) error {
		if err := models.SetupJoinTables(db); err != nil {
			return err
		}
		return db.AutoMigrate(models.All()...)
	}
	dropTableFn = func(db *gorm.DB, table interface{}) error { return db.Migrator().DropTable(table) }
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		// a single connection keeps shared-cache sqlite from reporting table locks
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { sqlDB.Close() })
	}
	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}

// DropTable removes a table to force repository errors.
func DropTable(t *testing.T, db *gorm.DB, table interface{}) {
	t.Helper()
	if err := dropTableFn(db, table); err != nil {
		panic(fmt.Sprintf("failed to drop table: %v", err))
	}
}

// SeedUser inserts a user with the given username; the email is derived from it.
func SeedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

// SeedGroup inserts a group mastered by master, with the master as its only player.
func SeedGroup(t *testing.T, db *gorm.DB, name string, master *models.User) *models.Group {
	t.Helper()
	group := &models.Group{
		Name:        name,
		Description: "a table for " + name,
		Chronic:     "weekly",
		Schedule:    "friday 20h",
		Location:    "online",
		Master:      master.ID,
	}
	if err := db.Omit("Players", "MasterUser").Create(group).Error; err != nil {
		t.Fatalf("failed to seed group %s: %v", name, err)
	}
	if err := db.Create(&models.GroupPlayer{GroupID: group.ID, UserID: master.ID}).Error; err != nil {
		t.Fatalf("failed to seed master player for %s: %v", name, err)
	}
	return group
}
