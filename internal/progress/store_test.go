package progress_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/f3rmion/orbital/internal/progress"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *progress.Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	path := filepath.Join(s.T().TempDir(), "nested", "progress.db")
	st, err := progress.Open(s.ctx, path, zap.NewNop())
	s.Require().NoError(err)
	s.store = st
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreSuite) TestCounters() {
	require := require.New(s.T())

	v, err := s.store.Counter(s.ctx, "missing")
	require.NoError(err)
	require.Zero(v)

	v, err = s.store.Incr(s.ctx, progress.CounterHints, 2)
	require.NoError(err)
	require.EqualValues(2, v)
	v, err = s.store.Incr(s.ctx, progress.CounterHints, 3)
	require.NoError(err)
	require.EqualValues(5, v)

	require.NoError(s.store.Max(s.ctx, progress.CounterBestStreak, 7))
	require.NoError(s.store.Max(s.ctx, progress.CounterBestStreak, 4))
	v, err = s.store.Counter(s.ctx, progress.CounterBestStreak)
	require.NoError(err)
	require.EqualValues(7, v)

	require.NoError(s.store.Set(s.ctx, progress.CounterRating, 1234))
	require.NoError(s.store.Set(s.ctx, progress.CounterRating, 1100))
	v, err = s.store.Counter(s.ctx, progress.CounterRating)
	require.NoError(err)
	require.EqualValues(1100, v)
}

func (s *StoreSuite) TestRecordLevelKeepsBest() {
	require := require.New(s.T())

	r, err := s.store.RecordLevel(s.ctx, 6, 3, 80)
	require.NoError(err)
	require.Equal(1, r.Completions)

	r, err = s.store.RecordLevel(s.ctx, 6, 1, 120)
	require.NoError(err)
	require.Equal(3, r.Stars)
	require.Equal(120, r.BestPoints)
	require.Equal(2, r.Completions)

	r, err = s.store.Level(s.ctx, 7)
	require.NoError(err)
	require.Zero(r.Completions)
}

func (s *StoreSuite) TestUnlockIsIdempotent() {
	require := require.New(s.T())
	fresh, err := s.store.Unlock(s.ctx, "first-atom")
	require.NoError(err)
	require.True(fresh)
	fresh, err = s.store.Unlock(s.ctx, "first-atom")
	require.NoError(err)
	require.False(fresh)
}

func (s *StoreSuite) TestRecordCompletion() {
	require := require.New(s.T())

	got, err := s.store.RecordCompletion(s.ctx, progress.Completion{
		Z: 10, Stars: 3, Points: 140, BestStreak: 10, Rating: 1250.4, HasPorD: true,
	})
	require.NoError(err)
	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	require.ElementsMatch([]string{"first-atom", "noble-gas", "flawless", "hund-hero"}, ids)

	got, err = s.store.RecordCompletion(s.ctx, progress.Completion{Z: 10, Stars: 1, Points: 20, Mistakes: 4, Hund: 2, Rating: 1230})
	require.NoError(err)
	require.Empty(got)

	st, err := s.store.Stats(s.ctx)
	require.NoError(err)
	require.EqualValues(2, st.Counters[progress.CounterAtoms])
	require.EqualValues(20, st.Counters[progress.CounterPlacements])
	require.EqualValues(4, st.Counters[progress.CounterMistakes])
	require.EqualValues(1230, st.Counters[progress.CounterRating])
	require.Equal(3, st.Stars()[10])
	require.Len(st.Achievements, 4)
}

func (s *StoreSuite) TestReset() {
	require := require.New(s.T())
	_, err := s.store.RecordCompletion(s.ctx, progress.Completion{Z: 1, Stars: 2})
	require.NoError(err)
	require.NoError(s.store.Reset(s.ctx))

	st, err := s.store.Stats(s.ctx)
	require.NoError(err)
	require.Empty(st.Counters)
	require.Empty(st.Levels)
	require.Empty(st.Achievements)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestEarnedPeriodTwo(t *testing.T) {
	levels := map[int]progress.LevelResult{}
	for z := 3; z <= 10; z++ {
		levels[z] = progress.LevelResult{Z: z, Completions: 1}
	}
	ids := progress.Earned(progress.Completion{Z: 9, Stars: 2, Hund: 1, HasPorD: true}, levels)
	assert.Contains(t, ids, "period-2")
	assert.NotContains(t, ids, "hund-hero")
	assert.NotContains(t, ids, "flawless")

	ids = progress.Earned(progress.Completion{Z: 26, BestStreak: 30}, nil)
	assert.Contains(t, ids, "transition-metal")
	assert.Contains(t, ids, "streak-25")
	assert.NotContains(t, ids, "period-2")
}
