package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/utils"
)

func newTasksService(t *testing.T) (*service.TasksService, *mocks.MockTasksRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTasksRepo(ctrl)

	return service.NewTasksService(repo, testConfig().Tasks, logger.NewNop()), repo
}

// Успех: title/description санитизируются, пустой приоритет становится medium
func TestTasksService_Create_Sanitizes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)
	user := uuid.New()

	repo.EXPECT().
		Create(ctx, user, "scriptalert(1)/script", "line1\n\tline2", models.PriorityMedium).
		Return(models.Task{ID: uuid.New()}, nil)

	_, err := svc.Create(ctx, user, "  <script>alert(1)</script>\x00 ", "line1\n\tline2\x07", "")
	require.NoError(t, err)
}

func TestTasksService_Create_TruncatesLongFields(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)
	user := uuid.New()

	repo.EXPECT().
		Create(ctx, user, gomock.Any(), gomock.Any(), models.PriorityHigh).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, title, desc string, _ models.Priority) (models.Task, error) {
			require.Equal(t, 200, len([]rune(title)))
			require.Equal(t, 2000, len([]rune(desc)))
			return models.Task{}, nil
		})

	_, err := svc.Create(ctx, user, strings.Repeat("я", 500), strings.Repeat("d", 5000), "HIGH")
	require.NoError(t, err)
}

// Пустой title: ничего не записывается
func TestTasksService_Create_EmptyTitle(t *testing.T) {
	svc, _ := newTasksService(t)

	for _, title := range []string{"", "   ", "<>", "\x01\x02"} {
		_, err := svc.Create(context.Background(), uuid.New(), title, "", models.PriorityLow)
		require.ErrorIs(t, err, serr.ErrInvalidInput, title)
		require.ErrorIs(t, err, serr.ErrEmptyTitle, title)
	}
}

func TestTasksService_Create_UnknownPriority(t *testing.T) {
	svc, _ := newTasksService(t)

	_, err := svc.Create(context.Background(), uuid.New(), "title", "", "urgent")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
	require.ErrorIs(t, err, serr.ErrUnknownPriority)
}

func TestTasksService_Create_EmptyUser(t *testing.T) {
	svc, _ := newTasksService(t)

	_, err := svc.Create(context.Background(), uuid.Nil, "title", "", "")
	require.ErrorIs(t, err, serr.ErrUserIDEmpty)
}

func TestTasksService_Create_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)

	repo.EXPECT().
		Create(ctx, gomock.Any(), "title", "", models.PriorityMedium).
		Return(models.Task{}, serr.ErrPersistence)

	_, err := svc.Create(ctx, uuid.New(), "title", "", "")
	require.ErrorIs(t, err, serr.ErrPersistence)
}

// новые первыми, при равном времени — по id
func TestTasksService_List_OrderNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)
	user := uuid.New()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	idA := uuid.MustParse("00000000-0000-4000-8000-00000000000a")
	idB := uuid.MustParse("00000000-0000-4000-8000-00000000000b")
	old := models.Task{ID: uuid.New(), CreatedAt: base}
	tieB := models.Task{ID: idB, CreatedAt: base.Add(time.Hour)}
	tieA := models.Task{ID: idA, CreatedAt: base.Add(time.Hour)}

	repo.EXPECT().
		List(ctx, user, models.TaskFilter{}).
		Return([]models.Task{old, tieB, tieA}, nil)

	got, err := svc.List(ctx, user, models.TaskFilter{})
	require.NoError(t, err)
	require.Equal(t, []models.Task{tieA, tieB, old}, got)
}

func TestTasksService_List_BadPriorityFilter(t *testing.T) {
	svc, _ := newTasksService(t)

	_, err := svc.List(context.Background(), uuid.New(), models.TaskFilter{Priority: "urgent"})
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// в репозиторий уходит только санитизированный патч
func TestTasksService_Update_SanitizesPatch(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)
	user, task := uuid.New(), uuid.New()

	repo.EXPECT().
		Update(ctx, task, user, models.TaskPatch{
			Title:     utils.StrPtr("new title"),
			Priority:  utils.Ptr(models.PriorityLow),
			Completed: utils.Ptr(true),
		}).
		Return(models.Task{ID: task, Title: "new title"}, nil)

	got, err := svc.Update(ctx, task, user, models.TaskPatch{
		Title:     utils.StrPtr(" <new title> "),
		Priority:  utils.Ptr(models.Priority("Low")),
		Completed: utils.Ptr(true),
	})
	require.NoError(t, err)
	require.Equal(t, "new title", got.Title)
}

func TestTasksService_Update_Invalid(t *testing.T) {
	svc, _ := newTasksService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.New(), uuid.New(), models.TaskPatch{Title: utils.StrPtr("  ")})
	require.ErrorIs(t, err, serr.ErrEmptyTitle)

	_, err = svc.Update(ctx, uuid.New(), uuid.New(), models.TaskPatch{Priority: utils.Ptr(models.Priority("asap"))})
	require.ErrorIs(t, err, serr.ErrUnknownPriority)
}

func TestTasksService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)

	repo.EXPECT().
		Update(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Task{}, serr.ErrNotFound)

	_, err := svc.Update(ctx, uuid.New(), uuid.New(), models.TaskPatch{})
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestTasksService_Passthrough(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTasksService(t)
	user, task := uuid.New(), uuid.New()

	repo.EXPECT().Toggle(ctx, task, user).Return(true, nil)
	repo.EXPECT().Delete(ctx, task, user).Return(nil)
	repo.EXPECT().Stats(ctx, user).Return(models.TaskStats{Total: 1, Pending: 1}, nil)
	repo.EXPECT().Get(ctx, task, user).Return(models.Task{ID: task}, nil)

	state, err := svc.Toggle(ctx, task, user)
	require.NoError(t, err)
	require.True(t, state)

	require.NoError(t, svc.Delete(ctx, task, user))

	st, err := svc.Stats(ctx, user)
	require.NoError(t, err)
	require.Equal(t, 1, st.Total)

	got, err := svc.Get(ctx, task, user)
	require.NoError(t, err)
	require.Equal(t, task, got.ID)
}
