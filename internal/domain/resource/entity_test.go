//go:build unit

package resource_test

import (
	"strings"
	"testing"
	"time"

	"lab-scheduler/internal/domain/resource"
	"lab-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewResourceBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, resource.StatusAvailable, actual.Status())
		assert.Equal(t, int64(1), actual.Version())
		assert.False(t, actual.IsDeleted())
	})

	cases := []struct {
		name   string
		mutate func(*builder.ResourceBuilder)
		errIs  error
	}{
		{
			name:   "empty name",
			mutate: func(b *builder.ResourceBuilder) { b.WithName("") },
			errIs:  resource.ErrEmptyName,
		},
		{
			name:   "whitespace only name",
			mutate: func(b *builder.ResourceBuilder) { b.WithName("   ") },
			errIs:  resource.ErrEmptyName,
		},
		{
			name:   "maximum length name",
			mutate: func(b *builder.ResourceBuilder) { b.WithName(strings.Repeat("a", resource.MaxNameLength)) },
		},
		{
			name:   "name exceeds maximum length",
			mutate: func(b *builder.ResourceBuilder) { b.WithName(strings.Repeat("a", resource.MaxNameLength+1)) },
			errIs:  resource.ErrNameTooLong,
		},
		{
			name:   "missing organization",
			mutate: func(b *builder.ResourceBuilder) { b.WithOrganizationID(uuid.Nil) },
			errIs:  resource.ErrMissingOrgID,
		},
		{
			name:   "missing manager",
			mutate: func(b *builder.ResourceBuilder) { b.WithManagerID(uuid.Nil) },
			errIs:  resource.ErrMissingManagerID,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewResourceBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestResourceBookable(t *testing.T) {
	t.Run("available resource is bookable", func(t *testing.T) {
		r := builder.NewResourceBuilder().BuildReconstructed(uuid.New(), nil)
		require.NoError(t, r.Bookable())
	})

	t.Run("reserved resource stays bookable", func(t *testing.T) {
		r := builder.NewResourceBuilder().
			WithStatus(resource.StatusReserved).
			BuildReconstructed(uuid.New(), nil)
		require.NoError(t, r.Bookable())
	})

	t.Run("maintenance resource rejects bookings", func(t *testing.T) {
		r := builder.NewResourceBuilder().
			WithStatus(resource.StatusMaintenance).
			BuildReconstructed(uuid.New(), nil)
		require.ErrorIs(t, r.Bookable(), resource.ErrUnderMaintenance)
	})

	t.Run("deleted resource rejects bookings", func(t *testing.T) {
		deletedAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		r := builder.NewResourceBuilder().BuildReconstructed(uuid.New(), &deletedAt)
		require.ErrorIs(t, r.Bookable(), resource.ErrResourceDeleted)
		assert.True(t, r.IsDeleted())
	})
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, resource.StatusAvailable.IsValid())
	assert.True(t, resource.StatusMaintenance.IsValid())
	assert.True(t, resource.StatusReserved.IsValid())
	assert.False(t, resource.Status("retired").IsValid())
	assert.False(t, resource.Status("").IsValid())
}
