package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/dashboard", "200"))
	RecordAPIRequest("GET", "/api/dashboard", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/dashboard", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordCatalogRequest(t *testing.T) {
	tests := []struct {
		name   string
		status int
		label  string
	}{
		{"ok", 200, "200"},
		{"upstream failure", 503, "503"},
		{"transport error", 0, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := CatalogRequestsTotal.WithLabelValues("search", tt.label)
			before := testutil.ToFloat64(counter)
			RecordCatalogRequest("search", tt.status, time.Millisecond)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}

	rejected := CatalogRequestsTotal.WithLabelValues("detail", "rejected")
	before := testutil.ToFloat64(rejected)
	RecordCatalogRejected("detail")
	assert.Equal(t, before+1, testutil.ToFloat64(rejected))
}

func TestRecordIngest(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		err     error
		outcome string
	}{
		{"created", true, nil, "created"},
		{"existing", false, nil, "existing"},
		{"failed", false, errors.New("boom"), "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := IngestsTotal.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(counter)
			RecordIngest(tt.created, tt.err)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestSetCatalogCircuitState(t *testing.T) {
	SetCatalogCircuitState(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CatalogCircuitState))
	SetCatalogCircuitState(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(CatalogCircuitState))
}
