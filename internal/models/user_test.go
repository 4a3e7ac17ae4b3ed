package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVillage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rampur", NormalizeVillage("  Rampur "))
	assert.Equal(t, "rampur", NormalizeVillage("RAMPUR"))
	assert.Equal(t, "", NormalizeVillage("   "))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@b.com", NormalizeEmail(" A@B.COM "))
}

// Casing drift between a stored record and a user's village must never leak
// records across villages.
func TestSameVillage(t *testing.T) {
	t.Parallel()

	user := &User{VillageName: "rampur"}
	assert.True(t, user.SameVillage("Rampur"))
	assert.True(t, user.SameVillage(" RAMPUR "))
	assert.False(t, user.SameVillage("Sitapur"))
}
