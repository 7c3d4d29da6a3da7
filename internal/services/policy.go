package services

import "roleplay/api/internal/models"

// CanMutateGroup reports whether actorID may update, delete or moderate g.
func CanMutateGroup(actorID uint, g *models.Group) bool {
	return g != nil && actorID != 0 && actorID == g.Master
}
