package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchgen/internal/trigger"
)

func TestLog_RecordTrimsToCapacity(t *testing.T) {
	l := New(3)
	for i := 1; i <= 5; i++ {
		l.Record(trigger.Outcome{Seq: uint64(i), Kind: trigger.KindSuccess})
	}

	assert.Equal(t, 3, l.Len())
	recent := l.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, uint64(5), recent[0].Seq, "newest first")
	assert.Equal(t, uint64(3), recent[2].Seq)
}

func TestLog_RecentLimit(t *testing.T) {
	l := New(10)
	for i := 1; i <= 4; i++ {
		l.Record(trigger.Outcome{Seq: uint64(i)})
	}

	assert.Len(t, l.Recent(2), 2)
	assert.Len(t, l.Recent(50), 4)
	assert.Empty(t, New(5).Recent(3))
}

func TestLog_Summarize(t *testing.T) {
	l := New(10)
	l.Record(trigger.Outcome{Seq: 1, Kind: trigger.KindSuccess, Duration: 100 * time.Millisecond})
	l.Record(trigger.Outcome{Seq: 2, Kind: trigger.KindMissingResult, Duration: 300 * time.Millisecond})
	l.Record(trigger.Outcome{Seq: 3, Kind: trigger.KindSkipped})

	s := l.Summarize()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.ByKind[trigger.KindSuccess])
	assert.Equal(t, 1, s.ByKind[trigger.KindMissingResult])
	assert.Equal(t, 1, s.ByKind[trigger.KindSkipped])
	assert.Equal(t, 200*time.Millisecond, s.AvgDuration)
	require.NotNil(t, s.Last)
	assert.Equal(t, uint64(3), s.Last.Seq)
}

func TestLog_ZeroCapacity(t *testing.T) {
	l := New(0)
	l.Record(trigger.Outcome{Seq: 1})
	l.Record(trigger.Outcome{Seq: 2})
	assert.Equal(t, 1, l.Len())
}
