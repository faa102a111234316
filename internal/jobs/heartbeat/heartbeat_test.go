package heartbeat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/crm/internal/jobs/joblog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Hello(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func newJob(checker LivenessChecker, fs afero.Fs) *Job {
	job := NewJob(checker, joblog.NewAppender(fs, "/tmp/crm_heartbeat_log.txt"), time.Second)
	job.now = func() time.Time { return time.Date(2025, 3, 9, 14, 5, 7, 0, time.Local) }

	return job
}

func TestRunResponsive(t *testing.T) {
	fs := afero.NewMemMapFs()
	checker := &mockChecker{}
	checker.On("Hello", mock.Anything).Return("Hello, GraphQL!", nil).Once()

	line := newJob(checker, fs).Run(context.Background())

	checker.AssertExpectations(t)
	assert.Equal(t, "09/03/2025-14:05:07 CRM is alive - GraphQL endpoint responsive: Hello, GraphQL!", line)

	content, err := afero.ReadFile(fs, "/tmp/crm_heartbeat_log.txt")
	require.NoError(t, err)
	assert.Equal(t, line+"\n", string(content))
}

func TestRunEndpointError(t *testing.T) {
	fs := afero.NewMemMapFs()
	checker := &mockChecker{}
	checker.On("Hello", mock.Anything).Return("", errors.New("connection refused")).Twice()

	job := newJob(checker, fs)
	job.Run(context.Background())
	job.Run(context.Background())

	content, err := afero.ReadFile(fs, "/tmp/crm_heartbeat_log.txt")
	require.NoError(t, err)
	want := "09/03/2025-14:05:07 CRM is alive - GraphQL endpoint error: connection refused\n"
	assert.Equal(t, want+want, string(content))
}

func TestRunAppliesTimeout(t *testing.T) {
	checker := &mockChecker{}
	checker.On("Hello", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return("ok", nil).Once()

	newJob(checker, afero.NewMemMapFs()).Run(context.Background())

	checker.AssertExpectations(t)
}

func TestRunSurvivesWriteFailure(t *testing.T) {
	checker := &mockChecker{}
	checker.On("Hello", mock.Anything).Return("Hello, GraphQL!", nil).Once()

	line := newJob(checker, afero.NewReadOnlyFs(afero.NewMemMapFs())).Run(context.Background())

	assert.Contains(t, line, "CRM is alive")
}
