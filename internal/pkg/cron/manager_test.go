package cron

import (
	"Folio/internal/job"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterJobsDisabled(t *testing.T) {
	mgr := NewCronManager("", job.NewOrphanTagCleanupJob(nil, nil))
	require.NoError(t, mgr.RegisterJobs())
	assert.Zero(t, mgr.Entries())
}

func TestRegisterJobs(t *testing.T) {
	mgr := NewCronManager("0 30 3 * * *", job.NewOrphanTagCleanupJob(nil, nil))
	require.NoError(t, mgr.RegisterJobs())
	assert.Equal(t, 1, mgr.Entries())
}

func TestRegisterJobsBadSpec(t *testing.T) {
	mgr := NewCronManager("every tuesday", job.NewOrphanTagCleanupJob(nil, nil))
	assert.Error(t, mgr.RegisterJobs())
}

func TestInitCronStartStop(t *testing.T) {
	mgr := NewCronManager("", nil)
	require.NoError(t, InitCron(mgr))
	mgr.Stop()
}
