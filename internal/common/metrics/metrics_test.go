package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer_Completed(t *testing.T) {
	const task = "test-completed"

	timer := StartJob(task)
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(task)))

	timer.Done("")
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(task)))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(task)))
}

func TestJobTimer_Failed(t *testing.T) {
	const task = "test-failed"

	StartJob(task).Done("PROFILE_INVALID")
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues(task, "PROFILE_INVALID")))
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(task)))
}
