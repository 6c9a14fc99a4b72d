package operations_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Magendanz/TechSmartAggregator/internal/dataprocessing"
	"github.com/Magendanz/TechSmartAggregator/internal/infrastructure"
	"github.com/Magendanz/TechSmartAggregator/internal/operations"
	"github.com/Magendanz/TechSmartAggregator/internal/operations/testutil"
)

// counterValue sums every series of the first metric family whose name
// starts with prefix.
func counterValue(t *testing.T, families []*dto.MetricFamily, prefix string) float64 {
	t.Helper()
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		total := 0.0
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not found", prefix)
	return 0
}

func TestOperationTracerRecordsRun(t *testing.T) {
	var traces bytes.Buffer
	cfg := infrastructure.DefaultOTelConfig()
	cfg.EnableTracing = true
	cfg.TraceWriter = &traces

	providers, err := infrastructure.InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	tracer, err := operations.NewOperationTracer(providers)
	require.NoError(t, err)
	require.NotNil(t, tracer.Metrics())

	manager := newGradebookManager(t, dataprocessing.DefaultOptions(), dataprocessing.DetailedTaxonomy())
	manager.SetTracer(tracer)

	_, err = manager.Execute(context.Background(), testutil.CreateTestOperationState("run-otel"))
	require.NoError(t, err)

	families, err := providers.Registry.Gather()
	require.NoError(t, err)
	assert.Equal(t, 5.0, counterValue(t, families, "gradebook_students"))
	assert.Equal(t, 3.0, counterValue(t, families, "gradebook_columns_removed"))
	assert.Equal(t, 2.0, counterValue(t, families, "gradebook_columns_merged"))
	assert.Equal(t, 3.0, counterValue(t, families, "gradebook_scores"))
	assert.Equal(t, 1.0, counterValue(t, families, "operation_executions"))

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, traces.String(), `"Name":"operation.execute"`)
	assert.Contains(t, traces.String(), "operation.step.reduce_scores")
}

func TestNilOperationTracer(t *testing.T) {
	var tracer *operations.OperationTracer
	assert.Nil(t, tracer.Metrics())

	state := testutil.CreateTestOperationState("run-nil")
	ctx, span := tracer.TraceOperationExecution(context.Background(), state)
	assert.NotNil(t, ctx)
	tracer.RecordOperationCompletion(ctx, span, state, nil)
}
