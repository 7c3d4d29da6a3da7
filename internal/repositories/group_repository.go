package repositories

import (
	"context"
	"strings"

	"roleplay/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupFilter narrows List; zero values disable a filter.
type GroupFilter struct {
	UserID uint
	Text   string
}

type GroupRepository struct {
	DB *gorm.DB
}

// Create inserts the group and its master's membership row atomically.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(group).Error; err != nil {
			return translate(err, ErrGroupNotFound)
		}
		player := &models.GroupPlayer{GroupID: group.ID, UserID: group.Master}
		return translate(tx.Create(player).Error, ErrGroupNotFound)
	})
}

func (r *GroupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.DB.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, ErrGroupNotFound)
	}
	return &group, nil
}

// GetWithRelations loads the group with its players and master projection.
func (r *GroupRepository) GetWithRelations(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.withRelations(r.DB.WithContext(ctx)).First(&group, id).Error; err != nil {
		return nil, translate(err, ErrGroupNotFound)
	}
	return &group, nil
}

// Update applies column changes to the group row.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return translate(r.DB.WithContext(ctx).Model(group).Updates(changes).Error, ErrGroupNotFound)
}

// Delete removes the group together with its membership and request rows.
func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupPlayer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupRequest{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Group{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}
		return nil
	})
}

func (r *GroupRepository) IsPlayer(ctx context.Context, groupID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.GroupPlayer{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) RemovePlayer(ctx context.Context, groupID, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupPlayer{}).Error
}

// List returns groups matching every filter that is set, ordered by id.
func (r *GroupRepository) List(ctx context.Context, filter GroupFilter) ([]models.Group, error) {
	db := r.DB.WithContext(ctx)
	query := r.withRelations(db.Model(&models.Group{}))

	if filter.UserID != 0 {
		members := db.Model(&models.GroupPlayer{}).Select("group_id").Where("user_id = ?", filter.UserID)
		query = query.Where("id IN (?)", members)
	}
	if text := strings.TrimSpace(filter.Text); text != "" {
		pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
		query = query.Where(
			db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
				Or(`LOWER(description) LIKE ? ESCAPE '\'`, pattern),
		)
	}

	groups := []models.Group{}
	err := query.Order("id ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("users.id ASC") }).
		Preload("MasterUser", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
