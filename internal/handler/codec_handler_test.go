package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/Siddarth2230/base62/internal/models"
	"github.com/Siddarth2230/base62/internal/service"
)

type fixedGenerator struct{ code string }

func (g fixedGenerator) Generate(ctx context.Context) (string, error) { return g.code, nil }
func (g fixedGenerator) Name() string                                 { return "fixed" }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	svc, err := service.NewCodecService(service.Options{
		Generator: fixedGenerator{code: "Z"},
		CacheSize: 8,
		Logger:    logger,
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewCodecHandler(svc, logger).Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, rd))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
}

func TestEncodeEndpoint(t *testing.T) {
	h := newTestRouter(t)
	big := "1" + strings.Repeat("0", 99)

	tests := []struct {
		path   string
		status int
	}{
		{"/encode/61", http.StatusOK},
		{"/encode/" + big, http.StatusOK},
		{"/encode/-1", http.StatusUnprocessableEntity},
		{"/encode/1.5", http.StatusBadRequest},
		{"/encode/abc", http.StatusBadRequest},
		{"/encode/1%202", http.StatusBadRequest},
		{"/encode/%2062%20", http.StatusOK},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodGet, tt.path, "")
		if rec.Code != tt.status {
			t.Errorf("GET %s = %d; want %d (%s)", tt.path, rec.Code, tt.status, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodGet, "/encode/62", "")
	var got models.EncodeResponse
	decodeBody(t, rec, &got)
	if diff := cmp.Diff(models.EncodeResponse{Value: "62", Code: "10"}, got); diff != "" {
		t.Errorf("encode response mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/decode/%201%20A", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var got models.DecodeResponse
	decodeBody(t, rec, &got)
	if diff := cmp.Diff(models.DecodeResponse{Code: "1A", Value: "98"}, got); diff != "" {
		t.Errorf("decode response mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodGet, "/decode/1$2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var errResp models.ErrorResponse
	decodeBody(t, rec, &errResp)
	pos := 1
	want := models.ErrorResponse{
		Error:     "Invalid Base62 character '$' at position 1 (U+0024).",
		Char:      "$",
		Position:  &pos,
		CodePoint: "U+0024",
	}
	if diff := cmp.Diff(want, errResp); diff != "" {
		t.Errorf("error response mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodGet, "/decode/%20%20", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank decode status = %d", rec.Code)
	}
}

func TestCleanEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/clean", `{"input":" 1 A\u200B"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got models.CleanResponse
	decodeBody(t, rec, &got)
	want := models.CleanResponse{Input: " 1 A\u200B", Cleaned: "1A", Valid: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clean response mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodPost, "/clean", `{"input":"   "}`)
	got = models.CleanResponse{}
	decodeBody(t, rec, &got)
	if got.Valid || got.Error != "Empty Base62 string." {
		t.Errorf("blank clean = %+v", got)
	}

	rec = do(t, h, http.MethodPost, "/clean", `{"input":"x","extra":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d", rec.Code)
	}
}

func TestDigestEndpoint(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/digest", `{"input":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got models.DigestResponse
	decodeBody(t, rec, &got)
	if got.Code == "" {
		t.Error("empty digest code")
	}
}

func TestIDEndpointsWithoutLedger(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/ids", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /ids = %d (%s)", rec.Code, rec.Body.String())
	}
	var got models.IssuedID
	decodeBody(t, rec, &got)
	if got.Code != "Z" || got.Value != "61" || got.Generator != "fixed" {
		t.Errorf("issued = %+v", got)
	}

	if rec := do(t, h, http.MethodGet, "/ids/Z", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /ids/Z = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/ids/Z", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("DELETE /ids/Z = %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
	do(t, h, http.MethodGet, "/encode/1", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "base62_codec_operations_total") {
		t.Errorf("metrics = %d", rec.Code)
	}
}
