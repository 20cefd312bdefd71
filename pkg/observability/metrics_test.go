package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/internal/logging"
	"github.com/aretw0/mockcoach/internal/testutils"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m := testutils.Mocks(3)
	rec := testutils.NewRecorder()
	rec.FailAt(domain.TrackAssertion, 3, errors.New("boom"))
	coach := mockcoach.MustNew(testutils.Participants(m...),
		rec.Callbacks(domain.TrackSetup, 3), rec.Callbacks(domain.TrackAssertion, 3),
		mockcoach.WithLifecycleHooks(metrics.Hooks()))

	require.NoError(t, coach.SetupBefore(m[1]))
	require.NoError(t, coach.SetupTheRest())
	require.Error(t, coach.AssertAll())

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Callbacks.WithLabelValues("setup", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Callbacks.WithLabelValues("assertion", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Callbacks.WithLabelValues("assertion", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Windows.WithLabelValues("setup", "open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Windows.WithLabelValues("setup", "close")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.Duration))

	expected := `
# HELP mockcoach_windows_total Total number of continuation windows opened and closed, by track
# TYPE mockcoach_windows_total counter
mockcoach_windows_total{event="close",track="setup"} 1
mockcoach_windows_total{event="open",track="setup"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "mockcoach_windows_total"))
}

func TestNewMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.ErrorContains(t, err, "failed to register metrics")

	unregistered, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, unregistered.Callbacks)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	m := testutils.Mocks(2)
	rec := testutils.NewRecorder()
	rec.FailAt(domain.TrackSetup, 2, errors.New("boom"))
	coach := mockcoach.MustNew(testutils.Participants(m...),
		rec.Callbacks(domain.TrackSetup, 2), rec.Callbacks(domain.TrackAssertion, 2),
		mockcoach.WithLifecycleHooks(observability.LogHooks(logger)))

	require.NoError(t, coach.SetupBefore(m[1]))
	require.Error(t, coach.SetupTheRest())

	out := buf.String()
	assert.Contains(t, out, "msg=window_open track=setup op=SetupBefore last_index=1")
	assert.Contains(t, out, "msg=callback track=setup op=SetupBefore position=1")
	assert.Contains(t, out, "err=boom")
	assert.Contains(t, out, "msg=window_close track=setup op=SetupTheRest")
}
