package job

import (
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/redis"
	"Folio/internal/pkg/testutil"
	"Folio/internal/repository"
	"Folio/internal/service"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrphan(t *testing.T, store repository.Store) {
	t.Helper()
	_, _, err := store.Tags().GetOrCreateTags(context.Background(), []string{"orphan"})
	require.NoError(t, err)
}

func countTags(t *testing.T, store repository.Store) int {
	t.Helper()
	tags, err := store.Tags().ListTags(context.Background())
	require.NoError(t, err)
	return len(tags)
}

func newJob(t *testing.T, locker Locker) (*OrphanTagCleanupJob, repository.Store) {
	t.Helper()
	store := repository.NewStore(testutil.NewTestDB(t))
	tagSvc := service.NewTagService(store, service.NewOrphanSweeper(store), nil)
	return NewOrphanTagCleanupJob(tagSvc, locker), store
}

func TestOrphanTagCleanupJobWithoutLocker(t *testing.T) {
	job, store := newJob(t, nil)
	seedOrphan(t, store)

	job.Run()

	assert.Zero(t, countTags(t, store))
}

func TestOrphanTagCleanupJobKeepsReferencedTags(t *testing.T) {
	job, store := newJob(t, nil)
	ctx := context.Background()
	seedOrphan(t, store)

	post := &model.Post{Title: "kept"}
	require.NoError(t, store.Posts().CreatePost(ctx, post))
	tags, _, err := store.Tags().GetOrCreateTags(ctx, []string{"used"})
	require.NoError(t, err)
	require.NoError(t, store.Tags().AttachTags(ctx, post.ID, []uint64{tags[0].ID}))

	job.Run()

	left, err := store.Tags().ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "used", left[0].Name)
}

func TestOrphanTagCleanupJobSkipsWhenLocked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := redis.NewLocker(client)

	job, store := newJob(t, locker)
	seedOrphan(t, store)

	require.NoError(t, mr.Set(consts.OrphanTagCleanupLock, "other-instance"))
	job.Run()
	assert.Equal(t, 1, countTags(t, store))

	mr.Del(consts.OrphanTagCleanupLock)
	job.Run()
	assert.Zero(t, countTags(t, store))
	assert.False(t, mr.Exists(consts.OrphanTagCleanupLock))
}

func TestOrphanTagCleanupJobLockExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ok, err := redis.NewLocker(client).TryLock(context.Background(), consts.OrphanTagCleanupLock, "stale", time.Second, 0)
	require.NoError(t, err)
	require.True(t, ok)
	mr.FastForward(2 * time.Second)

	job, store := newJob(t, redis.NewLocker(client))
	seedOrphan(t, store)
	job.Run()
	assert.Zero(t, countTags(t, store))
}
