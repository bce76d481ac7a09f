package telemetry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/orchestrator"
)

func TestServer_MetricsAndHealth(t *testing.T) {
	server := NewServer("127.0.0.1:0", func() bool { return true }, slog.Default())
	require.NoError(t, server.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	addr := server.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "ukleg_parses_total")

	live, err := http.Get("http://" + addr + "/healthz/liveness")
	require.NoError(t, err)
	defer live.Body.Close()
	require.Equal(t, http.StatusOK, live.StatusCode)

	ready, err := http.Get("http://" + addr + "/healthz/readiness")
	require.NoError(t, err)
	defer ready.Body.Close()
	require.Equal(t, http.StatusOK, ready.StatusCode)
}

func TestServer_ReadinessReflectsChecker(t *testing.T) {
	ready := false
	server := NewServer("127.0.0.1:0", func() bool { return ready }, slog.Default())
	require.NoError(t, server.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	resp, err := http.Get("http://" + server.Addr() + "/healthz/readiness")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	ready = true
	resp2, err := http.Get("http://" + server.Addr() + "/healthz/readiness")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestMetrics_StageCompleteIncrementsCounters(t *testing.T) {
	reg := NewRegistry()
	m := NewMetrics(reg, slog.Default())
	m.StageComplete(orchestrator.StageCompleteEvent{
		LawName: "UK_ukpga_1974_37", TypeCode: "ukpga", Stage: legalrecord.StageMetadata,
		Status: legalrecord.StageOK, DurationUs: (10 * time.Millisecond).Microseconds(),
	})
	m.ParseComplete(orchestrator.ParseCompleteEvent{
		LawName: "UK_ukpga_1974_37", TypeCode: "ukpga",
		DurationUs: (100 * time.Millisecond).Microseconds(), StagesRun: 7,
	})
	m.TaxaComplete(orchestrator.TaxaCompleteEvent{
		LawName: "UK_ukpga_1974_37", Source: "body",
		ActorDurationUs: 100, DutyTypeDurationUs: 50, PopimarDurationUs: 20, PurposeDurationUs: 30,
	})

	families, err := reg.Gather()
	require.NoError(t, err)
	var foundStages, foundTaxa bool
	for _, f := range families {
		switch f.GetName() {
		case "ukleg_stage_runs_total":
			foundStages = true
		case "ukleg_taxa_substage_duration_seconds":
			foundTaxa = true
		}
	}
	require.True(t, foundStages, "expected ukleg_stage_runs_total to be registered")
	require.True(t, foundTaxa, "expected ukleg_taxa_substage_duration_seconds to be registered")
}
