package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	const day = 19_000 * DayMs

	require.Equal(t, day, DayStart(day))
	require.Equal(t, day, DayStart(day+1))
	require.Equal(t, day, DayStart(day+DayMs-1))
	require.Equal(t, day+DayMs, DayStart(day+DayMs))
	require.Equal(t, 0, DayStart(DayMs-1))
}

func TestIsReleaseDue(t *testing.T) {
	const day = 19_000 * DayMs

	t.Run("same day", func(t *testing.T) {
		require.False(t, IsReleaseDue(day, day))
		require.False(t, IsReleaseDue(day, day+DayMs-1))
		require.False(t, IsReleaseDue(day+5, day+10))
	})
	t.Run("next day", func(t *testing.T) {
		require.True(t, IsReleaseDue(day, day+DayMs))
		require.True(t, IsReleaseDue(day+DayMs-1, day+DayMs))
	})
	t.Run("several days", func(t *testing.T) {
		require.True(t, IsReleaseDue(day, day+5*DayMs+42))
	})
	t.Run("clock behind marker", func(t *testing.T) {
		require.False(t, IsReleaseDue(day+DayMs, day))
	})
}

func TestMissedEpochs(t *testing.T) {
	const day = 19_000 * DayMs

	require.Equal(t, 0, MissedEpochs(day, day))
	require.Equal(t, 0, MissedEpochs(day, day+DayMs))
	require.Equal(t, 0, MissedEpochs(day+DayMs-1, day+DayMs))
	require.Equal(t, 2, MissedEpochs(day, day+3*DayMs+1))
	require.Equal(t, 0, MissedEpochs(day+DayMs, day))
}
