package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haccp/internal/domain"
)

func TestVisibleIn(t *testing.T) {
	selected := uuid.New()
	other := uuid.New()

	assert.True(t, domain.VisibleIn(nil, selected))
	assert.True(t, domain.VisibleIn(&selected, selected))
	assert.False(t, domain.VisibleIn(&other, selected))
}

func TestScopesOverlap(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.True(t, domain.ScopesOverlap(nil, &a))
	assert.True(t, domain.ScopesOverlap(&a, nil))
	assert.True(t, domain.ScopesOverlap(&a, &a))
	assert.False(t, domain.ScopesOverlap(&a, &b))
}

func TestValidatePIN(t *testing.T) {
	for _, pin := range []string{"1234", "123456"} {
		assert.NoError(t, domain.ValidatePIN(pin), pin)
	}
	for _, pin := range []string{"123", "1234567", "12a4", ""} {
		assert.ErrorIs(t, domain.ValidatePIN(pin), domain.ErrInvalidPIN, pin)
	}
}

func TestNormalizeInitials(t *testing.T) {
	got, err := domain.NormalizeInitials(" mü ")
	require.NoError(t, err)
	assert.Equal(t, "MÜ", got)

	for _, bad := range []string{"M", "ABCDE", "M1", "A B"} {
		_, err := domain.NormalizeInitials(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInitials, bad)
	}
}

func TestRoleSatisfies(t *testing.T) {
	assert.True(t, domain.RoleSuperAdmin.Satisfies(domain.RoleAdmin))
	assert.True(t, domain.RoleAdmin.Satisfies(domain.RoleAdmin))
	assert.False(t, domain.RoleStaff.Satisfies(domain.RoleAdmin))
	assert.False(t, domain.Role("BOGUS").Satisfies(domain.RoleStaff))
}
