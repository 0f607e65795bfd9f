package wire

import (
	"Folio/internal/api"
	"Folio/internal/api/config"
	"Folio/internal/api/handler"
	"Folio/internal/job"
	"Folio/internal/pkg/cron"
	"Folio/internal/pkg/kafka"
	"Folio/internal/repository"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

// BuildApplication publisher 与 locker 均可为 nil
func BuildApplication(db *gorm.DB, cfg *config.Config, publisher kafka.Publisher, locker job.Locker) *ApplicationContainer {
	store := repository.NewStore(db)

	reconciler := service.NewTagReconciler(store)
	sweeper := service.NewOrphanSweeper(store)
	postService := service.NewPostService(store, reconciler, publisher)
	tagService := service.NewTagService(store, sweeper, publisher)

	handlers := &api.HandlersGroup{
		PostHandler: handler.NewPostHandler(postService),
		TagHandler:  handler.NewTagHandler(tagService),
	}
	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(cfg.Cron.OrphanTagCleanup, job.NewOrphanTagCleanupJob(tagService, locker))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}
}
