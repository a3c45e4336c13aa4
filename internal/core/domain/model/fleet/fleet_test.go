package fleet_test

import (
	"testing"

	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicle_Capacity(t *testing.T) {
	rating, err := fleet.NewCapacity(decimal.NewFromInt(1000), 26)
	require.NoError(t, err)

	rigid, err := fleet.NewVehicle(kernel.NewUUID(), "AB12 CDE", fleet.Rigid, rating)
	require.NoError(t, err)
	got, ok := rigid.Capacity()
	assert.True(t, ok)
	assert.Equal(t, 26, got.Spaces)
	assert.False(t, rigid.RequiresTrailer())

	tractor, err := fleet.NewVehicle(kernel.NewUUID(), "TR01 UCK", fleet.Tractor, rating)
	require.NoError(t, err)
	_, ok = tractor.Capacity()
	assert.False(t, ok)
	assert.True(t, tractor.RequiresTrailer())
}

func TestNewVehicle_Validation(t *testing.T) {
	_, err := fleet.NewVehicle(kernel.UUID{}, "", fleet.Kind("van"), fleet.Capacity{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCapacity_RejectsNegative(t *testing.T) {
	_, err := fleet.NewCapacity(decimal.NewFromInt(-1), 1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = fleet.NewCapacity(decimal.Zero, -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTrailer(t *testing.T) {
	tr, err := fleet.NewTrailer(kernel.NewUUID(), "TRL 7", fleet.Capacity{Weight: decimal.NewFromInt(24000), Spaces: 26})
	require.NoError(t, err)
	require.NoError(t, tr.Validate())
	assert.Equal(t, "TRL 7", tr.Registration())

	var zero *fleet.Trailer
	require.ErrorIs(t, zero.Validate(), fleet.ErrTrailerIsNotConstructed)
}
