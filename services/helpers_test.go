package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vonvha/Nutri-Smart/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type emitted struct {
	Email, Type, Title, Description string
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []emitted
}

func (r *recordingNotifier) Emit(_ context.Context, email, typ, title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, emitted{email, typ, title, description})
}

func (r *recordingNotifier) all() []emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]emitted(nil), r.calls...)
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s+" 12:00", time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }
