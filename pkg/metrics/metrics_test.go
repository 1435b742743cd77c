package metrics

import (
	"net/http/httptest"
	"testing"
)

func TestRegistryIsSet(t *testing.T) {
	if Registry == nil {
		t.Fatal("Registry must not be nil")
	}
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)

	Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("metrics handler status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics handler returned empty body")
	}
}
