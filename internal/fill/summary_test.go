package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_AddFilledStats(t *testing.T) {
	t.Parallel()

	t.Run("empty leaves zeros", func(t *testing.T) {
		t.Parallel()
		var s Summary
		s.addFilledStats(nil)
		assert.Zero(t, s.FilledMean)
		assert.Zero(t, s.FilledStdDev)
		assert.Zero(t, s.FilledMin)
		assert.Zero(t, s.FilledMax)
	})

	t.Run("single value", func(t *testing.T) {
		t.Parallel()
		var s Summary
		s.addFilledStats([]float64{4.5})
		assert.Equal(t, 4.5, s.FilledMean)
		assert.Zero(t, s.FilledStdDev)
		assert.Equal(t, 4.5, s.FilledMin)
		assert.Equal(t, 4.5, s.FilledMax)
	})

	t.Run("distribution", func(t *testing.T) {
		t.Parallel()
		var s Summary
		s.addFilledStats([]float64{1, 2, 3, 4})
		assert.InDelta(t, 2.5, s.FilledMean, 1e-12)
		assert.InDelta(t, 1.2909944487358056, s.FilledStdDev, 1e-12)
		assert.Equal(t, 1.0, s.FilledMin)
		assert.Equal(t, 4.0, s.FilledMax)
	})
}
