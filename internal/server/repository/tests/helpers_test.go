package tests

import (
	"testing"
	"time"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/repository"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/storage"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/logger"
)

// fakeClock — управляемые часы для репозиториев.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newRepos собирает репозитории поверх файлового backend во временном каталоге.
func newRepos(t *testing.T, maxSessions int) (repository.Repositories, *storage.FileBackend, *fakeClock) {
	t.Helper()

	backend, err := storage.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}

	clock := newFakeClock()
	repos := repository.New(backend, logger.NewNop(), maxSessions)
	repos.Users.WithClock(clock.Now)
	repos.Tasks.WithClock(clock.Now)
	repos.Sessions.WithClock(clock.Now)

	return repos, backend, clock
}
