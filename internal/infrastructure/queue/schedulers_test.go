package queue

import (
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-ideas-hub/internal/config"
	"infinite-ideas-hub/internal/shared"
)

type recordingRegistrar struct {
	specs []string
	tasks []*asynq.Task
}

func (r *recordingRegistrar) Register(spec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	r.specs = append(r.specs, spec)
	r.tasks = append(r.tasks, task)
	return "entry", nil
}

func TestRegisterJobs_CleanupPendingSubscribers(t *testing.T) {
	rec := &recordingRegistrar{}
	s := &Scheduler{registrar: rec, jobConfig: config.JobConfig{PendingSubscriberCleanupCron: "0 * * * *"}}

	require.NoError(t, s.RegisterJobs())

	require.Len(t, rec.tasks, 1)
	assert.Equal(t, "0 * * * *", rec.specs[0])
	assert.Equal(t, shared.TypeCleanupPendingSubscribers, rec.tasks[0].Type())

	var p shared.CleanupPendingSubscribersPayload
	require.NoError(t, json.Unmarshal(rec.tasks[0].Payload(), &p))
	assert.Equal(t, 1000, p.BatchSize)
}
