package season

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockKey(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	require.Equal(t, lockKey(a), lockKey(a), "same season must map to the same key")
	assert.NotEqual(t, lockKey(a), lockKey(b), "distinct seasons should not share a key")
}

func TestRebuildResultSummary(t *testing.T) {
	id := uuid.MustParse("3d7c9a52-0000-0000-0000-000000000001")
	r := &RebuildResult{SeasonID: id, Periods: 3, Metrics: 42}

	assert.Equal(t, "season=3d7c9a52-0000-0000-0000-000000000001 periods=3 metrics=42 duration=0s errors=0", r.Summary())

	r.AddErrorf("upload %d unreadable", 7)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "upload 7 unreadable", r.Errors[0])
	assert.Contains(t, r.Summary(), "errors=1")
}

func TestAllianceRebuildResultSummary(t *testing.T) {
	r := &AllianceRebuildResult{Seasons: 2, Periods: 9, Metrics: 180}
	assert.Equal(t, "seasons=2 periods=9 metrics=180 errors=0", r.Summary())

	r.AddErrorf("season %s: %v", "s1", "boom")
	assert.Equal(t, "seasons=2 periods=9 metrics=180 errors=1", r.Summary())
}
