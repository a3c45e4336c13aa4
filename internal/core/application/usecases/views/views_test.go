package views_test

import (
	"errors"
	"testing"
	"time"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/fleet"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/core/domain/services"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLabel(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-02 Delivery AB12 CDE", views.RunLabel(date, run.Delivery, "AB12 CDE", ""))
	assert.Equal(t, "2026-03-02 Trunking TR01 UCK+TRL 7", views.RunLabel(date, run.Trunking, "TR01 UCK", "TRL 7"))
	assert.Equal(t, "2026-03-02 Collection", views.RunLabel(date, run.Collection, "", ""))
}

func TestNewLoad(t *testing.T) {
	t.Run("with ceiling", func(t *testing.T) {
		l := views.NewLoad(services.Load{
			TotalWeight:    decimal.NewFromInt(1200),
			TotalSpaces:    20,
			Ceiling:        fleet.Capacity{Weight: decimal.NewFromInt(1000), Spaces: 26},
			HasCeiling:     true,
			WeightExceeded: true,
		})

		require.NotNil(t, l.CeilingWeight)
		require.NotNil(t, l.CeilingSpaces)
		assert.Equal(t, 26, *l.CeilingSpaces)
		assert.True(t, l.Overloaded)
	})

	t.Run("without ceiling", func(t *testing.T) {
		l := views.NewLoad(services.Load{TotalWeight: decimal.NewFromInt(5)})

		assert.Nil(t, l.CeilingWeight)
		assert.Nil(t, l.CeilingSpaces)
		assert.False(t, l.Overloaded)
	})
}

func TestBulkResult(t *testing.T) {
	r := views.NewBulkResult()
	r.AddSuccess()
	r.AddSuccess()
	r.AddFailure("o-3", errs.NewAlreadyAssignedError("o-3", "r-1"))
	r.AddFailure("o-4", errors.New("boom"))

	assert.Equal(t, 2, r.Succeeded)
	assert.Equal(t, 2, r.Failed)
	require.Len(t, r.Failures, 2)
	assert.Equal(t, errs.KindAlreadyAssigned, r.Failures[0].Kind)
	assert.Equal(t, errs.KindInternal, r.Failures[1].Kind)
}
