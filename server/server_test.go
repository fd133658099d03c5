package server

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDirs(t *testing.T) {
	dirs := watchDirs([]string{"schemas/*.ttl", "schemas/*.yaml", "extra/deep/**/*.ttl", "*.yaml"})
	assert.Equal(t, []string{"schemas", "extra/deep", "."}, dirs)
}

func TestMatchesAny(t *testing.T) {
	globs := []string{"schemas/*.ttl", "*.yaml"}
	assert.True(t, matchesAny(globs, "schemas/animals.ttl"))
	assert.True(t, matchesAny(globs, "animals.yaml"))
	// Bare patterns match by base name wherever the file lives.
	assert.True(t, matchesAny(globs, "somewhere/else/animals.yaml"))
	assert.False(t, matchesAny(globs, "schemas/readme.md"))
}

func TestCoalesceMergesBursts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan struct{}, 10)
	out := coalesce(ctx, in, 20*time.Millisecond)

	for i := 0; i < 5; i++ {
		in <- struct{}{}
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-out:
	case <-time.After(time.Second):
		t.Fatal("expected a coalesced notification")
	}

	// The burst produced exactly one notification.
	select {
	case <-out:
		t.Fatal("unexpected second notification")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestCoalesceStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan struct{})
	out := coalesce(ctx, in, 10*time.Millisecond)
	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected channel close after cancel")
	}
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	m.regenerations.Inc()
	m.regenerationErrors.Inc()
	m.regenerationSeconds.Observe(0.1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["panschema_regenerations_total"])
	assert.True(t, names["panschema_regeneration_errors_total"])
	assert.True(t, names["panschema_regeneration_duration_seconds"])
}
