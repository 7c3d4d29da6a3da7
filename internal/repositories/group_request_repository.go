package repositories

import (
	"context"

	"roleplay/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRequestRepository struct {
	DB *gorm.DB
}

// Create inserts a pending request. The (group_id, user_id) unique index
// turns a concurrent duplicate into ErrDuplicate.
func (r *GroupRequestRepository) Create(ctx context.Context, request *models.GroupRequest) error {
	if request.Status == "" {
		request.Status = models.GroupRequestPending
	}
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(request).Error, ErrGroupRequestNotFound)
}

func (r *GroupRequestRepository) GetByID(ctx context.Context, id uint) (*models.GroupRequest, error) {
	var request models.GroupRequest
	if err := r.DB.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, translate(err, ErrGroupRequestNotFound)
	}
	return &request, nil
}

// GetWithRelations loads the request with group and requester projections.
func (r *GroupRequestRepository) GetWithRelations(ctx context.Context, id uint) (*models.GroupRequest, error) {
	var request models.GroupRequest
	if err := r.withRelations(r.DB.WithContext(ctx)).First(&request, id).Error; err != nil {
		return nil, translate(err, ErrGroupRequestNotFound)
	}
	return &request, nil
}

func (r *GroupRequestRepository) FindByPair(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error) {
	var request models.GroupRequest
	err := r.DB.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&request).Error
	if err != nil {
		return nil, translate(err, ErrGroupRequestNotFound)
	}
	return &request, nil
}

// ListPendingForMaster returns pending requests for every group mastered by masterID.
func (r *GroupRequestRepository) ListPendingForMaster(ctx context.Context, masterID uint) ([]models.GroupRequest, error) {
	db := r.DB.WithContext(ctx)
	owned := db.Model(&models.Group{}).Select("id").Where("master = ?", masterID)

	requests := []models.GroupRequest{}
	err := r.withRelations(db).
		Where("group_id IN (?)", owned).
		Where("status = ?", models.GroupRequestPending).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// Accept flips a pending request to ACCEPTED and adds the requester to the
// group in the same transaction.
func (r *GroupRequestRepository) Accept(ctx context.Context, id uint) (*models.GroupRequest, error) {
	var request models.GroupRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error; err != nil {
			return translate(err, ErrGroupRequestNotFound)
		}

		updated := tx.Model(&models.GroupRequest{}).
			Where("id = ? AND status = ?", id, models.GroupRequestPending).
			Update("status", models.GroupRequestAccepted)
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected == 0 {
			return ErrRequestNotPending
		}
		request.Status = models.GroupRequestAccepted

		player := &models.GroupPlayer{GroupID: request.GroupID, UserID: request.UserID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(player).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GroupRequestRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.GroupRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupRequestNotFound
	}
	return nil
}

func (r *GroupRequestRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Group", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "master") }).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}
