package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusConflict, "slug_already_exists", map[string]string{"slug": "taken"})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "slug_already_exists" {
		t.Errorf("unexpected error code %q", body.Error)
	}
}

func TestJSON_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, nil)
	if w.Body.String() != "null" {
		t.Fatalf("expected null body, got %q", w.Body.String())
	}
}

func TestDecode(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"hello"}`))
	if err := Decode(req, &dst); err != nil || dst.Title != "hello" {
		t.Fatalf("Decode() = %v, title=%q", err, dst.Title)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"titel":"typo"}`))
	if err := Decode(req, &dst); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"a"}{"title":"b"}`))
	if err := Decode(req, &dst); err == nil {
		t.Fatal("expected trailing data to be rejected")
	}
}
