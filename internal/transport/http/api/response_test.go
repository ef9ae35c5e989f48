package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFailWritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusConflict, "session_missing", "start again", "req-1")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error == nil || env.Error.Code != "session_missing" || env.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAttachmentHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "EMP0001_Salary_Slips.zip", "application/zip", []byte("PK"))

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="EMP0001_Salary_Slips.zip"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Header().Get("Content-Length") != "2" {
		t.Fatalf("unexpected length %q", rec.Header().Get("Content-Length"))
	}
	if rec.Body.String() != "PK" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
