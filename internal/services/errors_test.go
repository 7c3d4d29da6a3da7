package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"roleplay/api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrapsToKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", conflict("email already in use"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.Contains(t, err.Error(), "email already in use")
}

func TestStatusOfUnclassified(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestInvalidStateCarriesStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(invalidState(http.StatusBadRequest, "x")))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(invalidState(http.StatusUnprocessableEntity, "x")))
	assert.Equal(t, http.StatusGone, StatusOf(tokenExpired()))
}

func TestCanMutateGroup(t *testing.T) {
	group := &models.Group{ID: 1, Master: 7}

	assert.True(t, CanMutateGroup(7, group))
	assert.False(t, CanMutateGroup(8, group))
	assert.False(t, CanMutateGroup(0, &models.Group{}))
	assert.False(t, CanMutateGroup(7, nil))
}
