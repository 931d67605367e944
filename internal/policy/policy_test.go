package policy

import (
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanEditProfile(t *testing.T) {
	owner := &models.User{ID: 1}
	staff := &models.User{ID: 2, IsStaff: true}
	other := &models.User{ID: 3}

	assert.True(t, CanEditProfile(owner, 1).Allowed)
	assert.True(t, CanEditProfile(staff, 1).Allowed)

	d := CanEditProfile(other, 1)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)

	assert.False(t, CanEditProfile(nil, 1).Allowed)
}

func TestCanMutatePost(t *testing.T) {
	owner := &models.User{ID: 1}
	staff := &models.User{ID: 2, IsStaff: true}
	other := &models.User{ID: 3}
	post := &models.Post{ID: 10, UserID: 1}

	assert.True(t, CanMutatePost(owner, post).Allowed)
	assert.True(t, CanMutatePost(staff, post).Allowed)
	assert.False(t, CanMutatePost(other, post).Allowed)
	assert.False(t, CanMutatePost(nil, post).Allowed)
	assert.False(t, CanMutatePost(owner, nil).Allowed)
}

func TestCanAdministerUsers(t *testing.T) {
	assert.True(t, CanAdministerUsers(&models.User{ID: 1, IsStaff: true}).Allowed)
	assert.False(t, CanAdministerUsers(&models.User{ID: 1}).Allowed)
	assert.False(t, CanAdministerUsers(nil).Allowed)
}
