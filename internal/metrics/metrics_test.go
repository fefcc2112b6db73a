package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveInstructionCountsPerOutcome(t *testing.T) {
	filters := instructionsTotal.WithLabelValues("filtro")
	parseErrors := instructionsTotal.WithLabelValues("parse_error")
	beforeFilters := testutil.ToFloat64(filters)
	beforeParse := testutil.ToFloat64(parseErrors)

	ObserveInstruction("filtro")
	ObserveInstruction("filtro")
	ObserveInstruction("parse_error")

	assert.Equal(t, beforeFilters+2, testutil.ToFloat64(filters))
	assert.Equal(t, beforeParse+1, testutil.ToFloat64(parseErrors))
}

func TestObserveCompletionAddsProviderSeries(t *testing.T) {
	before := testutil.CollectAndCount(completionSeconds, "divimap_completion_seconds")

	ObserveCompletion("metrics-test-provider", 0.2)
	ObserveCompletion("metrics-test-provider", 0.4)

	assert.Equal(t, before+1, testutil.CollectAndCount(completionSeconds, "divimap_completion_seconds"))
}

func TestObserveMatchedIsExported(t *testing.T) {
	ObserveMatched(3)
	assert.Equal(t, 1, testutil.CollectAndCount(matchedFeatures, "divimap_filter_matched_features"))
}
