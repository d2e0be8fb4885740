package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/sweeney/smart-plug/internal/plug"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe(plug.StateOn, false, nil)
	m.Observe(plug.StateOff, true, []plug.Event{
		{Type: plug.EventCoordinatorDiscovered},
		{Type: plug.EventButtonToggled},
		{Type: plug.EventButtonToggled},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.iterations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.state))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolved))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("BUTTON_TOGGLED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("COORDINATOR_DISCOVERED")))
}

func TestRegistersOnInjectedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	n, err := testutil.GatherAndCount(reg, "smartplug_loop_iterations_total", "smartplug_state", "smartplug_coordinator_resolved")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Panics(t, func() { New(reg) }, "double registration should panic")
}
