package job

import (
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/logger"
	"Folio/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const orphanTagCleanupTimeout = 5 * time.Minute

// Locker 多副本部署时保证同一时刻只有一个实例执行
type Locker interface {
	TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value string) error
}

type OrphanTagCleanupJob struct {
	tagSvc service.TagService
	locker Locker
}

// NewOrphanTagCleanupJob locker 可以为 nil，此时不加锁
func NewOrphanTagCleanupJob(tagSvc service.TagService, locker Locker) *OrphanTagCleanupJob {
	return &OrphanTagCleanupJob{
		tagSvc: tagSvc,
		locker: locker,
	}
}

func (s *OrphanTagCleanupJob) Run() {
	traceID := "job-orphan-tag-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), orphanTagCleanupTimeout)
	defer cancel()

	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, consts.OrphanTagCleanupLock, traceID, orphanTagCleanupTimeout, 0)
		if err != nil {
			log.ErrorContext(ctx, "orphan tag cleanup lock error", "err", err)
			return
		}
		if !ok {
			log.InfoContext(ctx, "orphan tag cleanup skipped, lock held by another instance")
			return
		}
		defer func() {
			if err = s.locker.UnLock(context.Background(), consts.OrphanTagCleanupLock, traceID); err != nil {
				log.WarnContext(ctx, "orphan tag cleanup unlock error", "err", err)
			}
		}()
	}

	res, err := s.tagSvc.CleanupOrphanTags(ctx)
	if err != nil {
		log.ErrorContext(ctx, "orphan tag cleanup failed", "err", err)
		return
	}
	log.InfoContext(ctx, "orphan tag cleanup finished", "deleted", res.DeletedCount)
}
