package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestRotatorFollowsTheClock(t *testing.T) {
	r := NewRotator(nil, 0)
	require.Equal(t, 2, r.Total())

	base := time.Unix(1_800_000_000, 0) // multiple of 5s
	v := r.At(base)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, base.Add(DefaultInterval).UTC(), v.NextAt)
	assert.Equal(t, int64(5000), v.IntervalMS)

	assert.Equal(t, 0, r.At(base.Add(4999*time.Millisecond)).Index)
	assert.Equal(t, 1, r.At(base.Add(5*time.Second)).Index)
	assert.Equal(t, "CLÁSSICOS", r.At(base.Add(5*time.Second)).Slide.Title)
	assert.Equal(t, 0, r.At(base.Add(10*time.Second)).Index)
}

func TestRotatorStepWrapsAround(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	r := NewRotator([]Slide{{Title: "a"}, {Title: "b"}, {Title: "c"}}, time.Minute)
	r.Clock = fixedClock(now)

	v, ok := r.Step(2, 1)
	require.True(t, ok)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, now.Add(time.Minute).UTC(), v.NextAt)

	v, ok = r.Step(0, -1)
	require.True(t, ok)
	assert.Equal(t, 2, v.Index)

	_, ok = r.Step(3, 1)
	assert.False(t, ok)
	_, ok = r.Show(-1)
	assert.False(t, ok)

	v, ok = r.Show(1)
	require.True(t, ok)
	assert.Equal(t, "b", v.Slide.Title)
}

func TestRotatorNavigationLeavesRotationAlone(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	r := NewRotator(nil, 0)
	r.Clock = fixedClock(now)

	before := r.Current().Index
	_, _ = r.Step(before, 1)
	_, _ = r.Show(1)
	assert.Equal(t, before, r.Current().Index)
}
