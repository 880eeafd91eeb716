package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/utils"
)

func TestTasksRepository_Create_RoundTrip(t *testing.T) {
	repos, _, clock := newRepos(t, 0)
	ctx := context.Background()
	user := uuid.New()

	created, err := repos.Tasks.Create(ctx, user, "Buy milk", "2 liters", models.PriorityHigh)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.False(t, created.Completed)
	require.Equal(t, clock.Now(), created.CreatedAt)
	require.Equal(t, clock.Now(), created.UpdatedAt)

	got, err := repos.Tasks.Get(ctx, created.ID, user)
	require.NoError(t, err)
	require.Equal(t, created, got)

	list, err := repos.Tasks.List(ctx, user, models.TaskFilter{})
	require.NoError(t, err)
	require.Equal(t, []models.Task{created}, list)
}

// чужая задача неотличима от несуществующей
func TestTasksRepository_OwnershipIsolation(t *testing.T) {
	repos, _, _ := newRepos(t, 0)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	task, err := repos.Tasks.Create(ctx, owner, "private", "", models.PriorityLow)
	require.NoError(t, err)

	_, err = repos.Tasks.Get(ctx, task.ID, stranger)
	require.ErrorIs(t, err, serr.ErrNotFound)

	_, err = repos.Tasks.Update(ctx, task.ID, stranger, models.TaskPatch{Title: utils.StrPtr("hacked")})
	require.ErrorIs(t, err, serr.ErrNotFound)

	_, err = repos.Tasks.Toggle(ctx, task.ID, stranger)
	require.ErrorIs(t, err, serr.ErrNotFound)

	require.ErrorIs(t, repos.Tasks.Delete(ctx, task.ID, stranger), serr.ErrNotFound)

	list, err := repos.Tasks.List(ctx, stranger, models.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, list)

	// задача владельца не тронута
	got, err := repos.Tasks.Get(ctx, task.ID, owner)
	require.NoError(t, err)
	require.Equal(t, task, got)
}

func TestTasksRepository_List_Filters(t *testing.T) {
	repos, _, _ := newRepos(t, 0)
	ctx := context.Background()
	user, other := uuid.New(), uuid.New()

	a, _ := repos.Tasks.Create(ctx, user, "a", "", models.PriorityHigh)
	b, _ := repos.Tasks.Create(ctx, user, "b", "", models.PriorityLow)
	c, _ := repos.Tasks.Create(ctx, other, "c", "", models.PriorityHigh)
	_, err := repos.Tasks.Toggle(ctx, b.ID, user)
	require.NoError(t, err)

	high, err := repos.Tasks.List(ctx, user, models.TaskFilter{Priority: models.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, high, 1)
	require.Equal(t, a.ID, high[0].ID)

	done, err := repos.Tasks.List(ctx, user, models.TaskFilter{Completed: utils.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, done, 1)
	require.Equal(t, b.ID, done[0].ID)

	// без владельца — все задачи
	all, err := repos.Tasks.List(ctx, uuid.Nil, models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, c.ID, all[2].ID)
}

func TestTasksRepository_Update_PartialPatch(t *testing.T) {
	repos, _, clock := newRepos(t, 0)
	ctx := context.Background()
	user := uuid.New()

	task, err := repos.Tasks.Create(ctx, user, "title", "desc", models.PriorityMedium)
	require.NoError(t, err)

	clock.Advance(time.Minute)

	updated, err := repos.Tasks.Update(ctx, task.ID, user, models.TaskPatch{
		Priority: utils.Ptr(models.PriorityHigh),
	})
	require.NoError(t, err)
	require.Equal(t, "title", updated.Title)
	require.Equal(t, "desc", updated.Description)
	require.Equal(t, models.PriorityHigh, updated.Priority)
	require.Equal(t, task.CreatedAt, updated.CreatedAt)
	require.Equal(t, clock.Now(), updated.UpdatedAt)

	got, err := repos.Tasks.Get(ctx, task.ID, user)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestTasksRepository_Update_NotFound(t *testing.T) {
	repos, _, _ := newRepos(t, 0)

	_, err := repos.Tasks.Update(context.Background(), uuid.New(), uuid.New(), models.TaskPatch{})
	require.ErrorIs(t, err, serr.ErrNotFound)
}

// двойной toggle возвращает исходное состояние, UpdatedAt обновляется
func TestTasksRepository_Toggle_Pair(t *testing.T) {
	repos, _, clock := newRepos(t, 0)
	ctx := context.Background()
	user := uuid.New()

	task, err := repos.Tasks.Create(ctx, user, "t", "", models.PriorityLow)
	require.NoError(t, err)

	clock.Advance(time.Second)
	state, err := repos.Tasks.Toggle(ctx, task.ID, user)
	require.NoError(t, err)
	require.True(t, state)

	clock.Advance(time.Second)
	state, err = repos.Tasks.Toggle(ctx, task.ID, user)
	require.NoError(t, err)
	require.False(t, state)

	got, err := repos.Tasks.Get(ctx, task.ID, user)
	require.NoError(t, err)
	require.False(t, got.Completed)
	require.Equal(t, clock.Now(), got.UpdatedAt)
}

func TestTasksRepository_Delete(t *testing.T) {
	repos, _, _ := newRepos(t, 0)
	ctx := context.Background()
	user := uuid.New()

	a, _ := repos.Tasks.Create(ctx, user, "a", "", models.PriorityLow)
	b, _ := repos.Tasks.Create(ctx, user, "b", "", models.PriorityLow)

	require.NoError(t, repos.Tasks.Delete(ctx, a.ID, user))
	require.ErrorIs(t, repos.Tasks.Delete(ctx, a.ID, user), serr.ErrNotFound)

	list, err := repos.Tasks.List(ctx, user, models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, b.ID, list[0].ID)
}

// total == completed + pending; by_priority считает только незавершённые
func TestTasksRepository_Stats(t *testing.T) {
	repos, _, _ := newRepos(t, 0)
	ctx := context.Background()
	user := uuid.New()

	h1, _ := repos.Tasks.Create(ctx, user, "h1", "", models.PriorityHigh)
	_, _ = repos.Tasks.Create(ctx, user, "h2", "", models.PriorityHigh)
	_, _ = repos.Tasks.Create(ctx, user, "m", "", models.PriorityMedium)
	l, _ := repos.Tasks.Create(ctx, user, "l", "", models.PriorityLow)
	_, _ = repos.Tasks.Create(ctx, uuid.New(), "foreign", "", models.PriorityHigh)

	_, err := repos.Tasks.Toggle(ctx, h1.ID, user)
	require.NoError(t, err)
	_, err = repos.Tasks.Toggle(ctx, l.ID, user)
	require.NoError(t, err)

	st, err := repos.Tasks.Stats(ctx, user)
	require.NoError(t, err)
	require.Equal(t, models.TaskStats{
		Total:      4,
		Completed:  2,
		Pending:    2,
		ByPriority: models.PriorityBreakdown{High: 1, Medium: 1, Low: 0},
	}, st)
	require.Equal(t, st.Total, st.Completed+st.Pending)
	require.LessOrEqual(t, st.ByPriority.High+st.ByPriority.Medium+st.ByPriority.Low, st.Pending)
}

func TestTasksRepository_Stats_Empty(t *testing.T) {
	repos, _, _ := newRepos(t, 0)

	st, err := repos.Tasks.Stats(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, models.TaskStats{}, st)
}

// параллельные Create не теряют задачи
func TestTasksRepository_Create_Concurrent(t *testing.T) {
	repos, _, _ := newRepos(t, 0)
	ctx := context.Background()
	user := uuid.New()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repos.Tasks.Create(ctx, user, "t", "", models.PriorityMedium); err != nil {
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()

	st, err := repos.Tasks.Stats(ctx, user)
	require.NoError(t, err)
	require.Equal(t, n, st.Total)
}
