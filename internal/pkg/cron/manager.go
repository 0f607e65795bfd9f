package cron

import (
	"Folio/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	orphanTagSpec    string
	orphanCleanupJob *job.OrphanTagCleanupJob
}

// NewCronManager orphanTagSpec 为 6 段式 cron 表达式，为空时不注册
func NewCronManager(orphanTagSpec string, orphanCleanupJob *job.OrphanTagCleanupJob) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds()),
		orphanTagSpec:    orphanTagSpec,
		orphanCleanupJob: orphanCleanupJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.orphanTagSpec == "" || s.orphanCleanupJob == nil {
		log.Info("orphan tag cleanup job disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.orphanTagSpec, s.orphanCleanupJob); err != nil {
		return err
	}
	log.Info("orphan tag cleanup job registered", "spec", s.orphanTagSpec)
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
