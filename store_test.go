package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := openStore(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_OpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := openStore(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordVisit("aaaa", "ua", "/", time.Now()))
	require.NoError(t, s.Close())

	s, err = openStore(path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.RecentVisitors(10)
	require.NoError(t, err)
	assert.Len(t, v, 1)
}

func TestStore_VisitorStatsAndCleanup(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordVisit("aaaa", "ua", "/", now.Add(-time.Hour)))
	require.NoError(t, s.RecordVisit("aaaa", "ua", "/", now.Add(-26*time.Hour)))
	require.NoError(t, s.RecordVisit("bbbb", "ua", "/x", now.AddDate(0, 0, -3)))
	require.NoError(t, s.RecordVisit("cccc", "ua", "/", now.AddDate(-2, 0, 0)))

	stats, err := s.Stats(now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(1), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, now.Add(-time.Hour).Unix(), stats.RecentVisitors[0].Timestamp.Unix())

	deleted, err := s.CleanupVisitors(now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestStore_ParticleSessions(t *testing.T) {
	s := openTestStore(t)
	start := time.Unix(1_700_000_000, 0)

	rec := ParticleSessionRecord{
		ID: "s1", Count: 100, Color: "#ffffff", Size: 0.05, RotateX: 0.03, RotateY: 0.06,
		Width: 640, Height: 480, Frames: 300, StartedAt: start, EndedAt: start.Add(10 * time.Second),
	}
	require.NoError(t, s.RecordParticleSession(rec))
	require.NoError(t, s.RecordParticleSession(ParticleSessionRecord{
		ID: "s2", Count: 2000, Color: "#ff84e4", Size: 0.02, Width: 1, Height: 1, Frames: 5,
		StartedAt: start, EndedAt: start.Add(20 * time.Second),
	}))

	got, err := s.RecentParticleSessions(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID)
	assert.Equal(t, rec, got[1])
	assert.Equal(t, 10*time.Second, got[1].Duration())

	stats, err := s.Stats(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ParticleSessions)
	assert.Equal(t, int64(305), stats.FramesRendered)
}

func TestStore_ContactMessages(t *testing.T) {
	s := openTestStore(t)
	id, err := s.SaveContactMessage(ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hi", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Positive(t, id)

	msgs, err := s.RecentContactMessages(5)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Delivered)

	require.NoError(t, s.MarkContactDelivered(id))
	msgs, err = s.RecentContactMessages(5)
	require.NoError(t, err)
	assert.True(t, msgs[0].Delivered)
}
