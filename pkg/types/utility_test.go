package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourWindowContains(t *testing.T) {
	t.Run("full day", func(t *testing.T) {
		w := HourWindow{Start: 0, End: 24}
		for h := 0; h < 24; h++ {
			assert.True(t, w.Contains(h), "hour %d", h)
		}
		assert.Equal(t, 24, w.Hours())
	})

	t.Run("half open", func(t *testing.T) {
		w := HourWindow{Start: 16, End: 21}
		assert.False(t, w.Contains(15))
		assert.True(t, w.Contains(16))
		assert.True(t, w.Contains(20))
		assert.False(t, w.Contains(21))
		assert.Equal(t, 5, w.Hours())
	})

	t.Run("wraps midnight", func(t *testing.T) {
		w := HourWindow{Start: 22, End: 6}
		assert.True(t, w.Contains(22))
		assert.True(t, w.Contains(23))
		assert.True(t, w.Contains(0))
		assert.True(t, w.Contains(5))
		assert.False(t, w.Contains(6))
		assert.False(t, w.Contains(12))
		assert.Equal(t, 8, w.Hours())
	})

	t.Run("empty", func(t *testing.T) {
		w := HourWindow{Start: 9, End: 9}
		for h := 0; h < 24; h++ {
			assert.False(t, w.Contains(h), "hour %d", h)
		}
		assert.Equal(t, 0, w.Hours())
	})
}

func TestHourWindowValidate(t *testing.T) {
	assert.NoError(t, HourWindow{Start: 0, End: 24}.Validate())
	assert.Error(t, HourWindow{Start: -1, End: 4}.Validate())
	assert.Error(t, HourWindow{Start: 3, End: 25}.Validate())
}
