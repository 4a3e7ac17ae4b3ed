package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gramseva/portal/internal/apperr"
)

func TestParseObjectID(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	parsed, err := parseObjectID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = parseObjectID("garbage")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit         int
		wantPage, wantLimit int64
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-3, 25, 1, 25},
		{2, 0, 2, DefaultPageSize},
		{2, 101, 2, MaxPageSize},
		{2, 500, 2, MaxPageSize},
		{5, 100, 5, 100},
	}
	for _, tt := range tests {
		p, l := normalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantLimit, l)
	}
}

func TestValidWorkYear(t *testing.T) {
	t.Parallel()

	current := time.Now().Year()
	assert.True(t, ValidWorkYear(current))
	assert.True(t, ValidWorkYear(current+1))
	assert.True(t, ValidWorkYear(1900))
	assert.False(t, ValidWorkYear(1899))
	assert.False(t, ValidWorkYear(current+2))
	assert.False(t, ValidWorkYear(0))
}
