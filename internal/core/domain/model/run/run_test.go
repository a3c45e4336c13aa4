package run_test

import (
	"testing"
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRun(t *testing.T) *run.Run {
	t.Helper()
	r, err := run.NewRun(kernel.NewUUID(), time.Date(2026, 10, 19, 15, 30, 0, 0, time.Local),
		run.Delivery, kernel.NewUUID(), kernel.NewUUID(), nil)
	require.NoError(t, err)
	return r
}

func TestNewRun(t *testing.T) {
	t.Run("creates a planned run on a calendar day", func(t *testing.T) {
		r := newTestRun(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, run.Planned, r.Status())
		assert.Equal(t, "2026-10-19", r.Date().Format(run.DateLayout))
		assert.Zero(t, r.Date().Hour())
		assert.Nil(t, r.TrailerID())
	})

	t.Run("missing date, driver and vehicle are validation errors", func(t *testing.T) {
		_, err := run.NewRun(kernel.NewUUID(), time.Time{}, run.Collection, kernel.UUID{}, kernel.UUID{}, nil)

		require.ErrorIs(t, err, run.ErrDateIsRequired)
		require.ErrorIs(t, err, run.ErrDriverIsRequired)
		require.ErrorIs(t, err, run.ErrVehicleIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown type is invalid", func(t *testing.T) {
		_, err := run.NewRun(kernel.NewUUID(), time.Now(), run.Type("air"), kernel.NewUUID(), kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("trailer id is copied", func(t *testing.T) {
		trailer := kernel.NewUUID()
		r, err := run.NewRun(kernel.NewUUID(), time.Now(), run.Trunking, kernel.NewUUID(), kernel.NewUUID(), &trailer)
		require.NoError(t, err)

		got := r.TrailerID()
		require.NotNil(t, got)
		assert.True(t, got.IsEqual(trailer))
	})
}

func TestRun_Lifecycle(t *testing.T) {
	t.Run("forward only", func(t *testing.T) {
		r := newTestRun(t)

		require.ErrorIs(t, r.Complete(), errs.ErrInvalidState)
		require.NoError(t, r.Start())
		assert.Equal(t, run.InProgress, r.Status())
		assert.True(t, r.Status().AllowsManifest())
		require.ErrorIs(t, r.Start(), errs.ErrInvalidState)
		require.NoError(t, r.Complete())
		assert.Equal(t, run.Completed, r.Status())
		require.ErrorIs(t, r.Start(), errs.ErrInvalidState)
		require.ErrorIs(t, r.Complete(), errs.ErrInvalidState)
	})

	t.Run("assignment and deletion only while planned", func(t *testing.T) {
		r := newTestRun(t)
		require.NoError(t, r.ValidateAssignable("assign"))
		require.NoError(t, r.ValidateDelete())
		assert.False(t, r.Status().AllowsManifest())

		require.NoError(t, r.Start())

		require.ErrorIs(t, r.ValidateAssignable("assign"), errs.ErrInvalidState)
		require.ErrorIs(t, r.MarkDeleted(), errs.ErrInvalidState)
		assert.False(t, r.IsDeleted())
	})

	t.Run("mark deleted", func(t *testing.T) {
		r := newTestRun(t)

		require.NoError(t, r.MarkDeleted())
		assert.True(t, r.IsDeleted())
	})
}

func TestParseType(t *testing.T) {
	typ, err := run.ParseType(" Delivery ")
	require.NoError(t, err)
	assert.Equal(t, run.Delivery, typ)
	assert.Equal(t, "Delivery", typ.Title())

	_, err = run.ParseType("boat")
	require.Error(t, err)
}
