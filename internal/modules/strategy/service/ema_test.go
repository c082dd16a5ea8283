package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yingyang_bot/internal/models"
)

func defs(vals ...float64) []models.Value {
	out := make([]models.Value, len(vals))
	for i, v := range vals {
		out[i] = models.Def(v)
	}
	return out
}

func TestEMASeries(t *testing.T) {
	// period 3 -> alpha 0.5, сид — первое значение
	got := emaSeries([]float64{2, 4, 8}, 3)
	require.Len(t, got, 3)
	for i, want := range []float64{2, 3, 5.5} {
		assert.True(t, got[i].OK, "i=%d", i)
		assert.InDelta(t, want, got[i].V, 1e-12, "i=%d", i)
	}
}

func TestEMASeries_PeriodOne(t *testing.T) {
	in := []float64{7, 3, 9}
	for _, period := range []int{1, 0, -4} {
		got := emaSeries(in, period)
		for i, v := range in {
			assert.True(t, got[i].OK)
			assert.InDelta(t, v, got[i].V, 1e-12, "period=%d i=%d", period, i)
		}
	}
}

func TestSMASeries(t *testing.T) {
	got := smaSeries([]float64{1, 2, 3, 4}, 2)
	require.Len(t, got, 4)

	assert.False(t, got[0].OK)
	for i, want := range []float64{1.5, 2.5, 3.5} {
		assert.True(t, got[i+1].OK)
		assert.InDelta(t, want, got[i+1].V, 1e-12)
	}
}

func TestSMASeries_WindowLongerThanSeries(t *testing.T) {
	for _, v := range smaSeries([]float64{1, 2}, 3) {
		assert.False(t, v.OK)
	}
}

func TestRollingMean(t *testing.T) {
	got := rollingMean(defs(1, 2, 3, 4), 2)
	require.Len(t, got, 4)

	assert.False(t, got[0].OK)
	for i, want := range []float64{1.5, 2.5, 3.5} {
		assert.True(t, got[i+1].OK)
		assert.InDelta(t, want, got[i+1].V, 1e-12)
	}
}

func TestRollingMean_HolePropagates(t *testing.T) {
	// дырка внутри окна гасит результат, пока не выедет из него
	in := []models.Value{models.Def(1), models.Undef, models.Def(3), models.Def(5)}
	got := rollingMean(in, 2)

	assert.False(t, got[0].OK)
	assert.False(t, got[1].OK)
	assert.False(t, got[2].OK)
	require.True(t, got[3].OK)
	assert.InDelta(t, 4, got[3].V, 1e-12)
}

func TestRollingMean_LeadingHoles(t *testing.T) {
	in := []models.Value{models.Undef, models.Def(1), models.Def(2)}
	got := rollingMean(in, 2)

	assert.False(t, got[0].OK)
	assert.False(t, got[1].OK)
	require.True(t, got[2].OK)
	assert.InDelta(t, 1.5, got[2].V, 1e-12)
}

func TestRollingMean_WindowOne(t *testing.T) {
	in := []models.Value{models.Def(7), models.Undef, models.Def(2)}
	got := rollingMean(in, 1)

	require.True(t, got[0].OK)
	assert.InDelta(t, 7, got[0].V, 1e-12)
	assert.False(t, got[1].OK)
	require.True(t, got[2].OK)
	assert.InDelta(t, 2, got[2].V, 1e-12)
}
