package metrics_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/infra/metrics"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.RecordOutcome(model.Delivered(200), 120*time.Millisecond)
	r.RecordOutcome(model.Delivered(202), 80*time.Millisecond)
	r.RecordOutcome(model.Skipped(model.ReasonFiltered), time.Millisecond)
	r.RecordOutcome(model.Failed("dial tcp: connection refused"), time.Second)
	r.RecordNotification("accepted")

	count, err := testutil.GatherAndCount(reg, "dxrelay_delivery_outcomes_total")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(3)

	count, err = testutil.GatherAndCount(reg, "dxrelay_delivery_duration_seconds")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(1)

	count, err = testutil.GatherAndCount(reg, "dxrelay_notifications_total")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(1)
}
