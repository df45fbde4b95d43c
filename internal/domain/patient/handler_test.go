package patient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pms/pms/internal/platform/httperr"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(newMockRepo()))
	e := echo.New()
	e.Validator = httperr.NewValidator()
	return h, e
}

func createTestPatient(t *testing.T, h *Handler, e *echo.Echo) int64 {
	t.Helper()
	body := `{"name":"Ravi","city":"Delhi","age":30,"gender":"male","height":1.75,"weight":75.0}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("create: %v", err)
	}
	var resp Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	return resp.ID
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Ravi","city":"Delhi","age":30,"gender":"male","height":1.75,"weight":75.0,"diagnosis":"hypertension"}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.BMI != 24.49 {
		t.Errorf("expected bmi 24.49 in body, got %v", resp.BMI)
	}
	if resp.Verdict != "Normal" {
		t.Errorf("expected verdict Normal in body, got %q", resp.Verdict)
	}
	if resp.Diagnosis == nil || *resp.Diagnosis != "hypertension" {
		t.Errorf("expected diagnosis to round-trip, got %v", resp.Diagnosis)
	}
}

func TestHandler_Create_Invalid(t *testing.T) {
	h, e := newTestHandler()

	tests := map[string]string{
		"zero age":       `{"name":"Ravi","city":"Delhi","age":0,"gender":"male","height":1.75,"weight":75.0}`,
		"age too high":   `{"name":"Ravi","city":"Delhi","age":120,"gender":"male","height":1.75,"weight":75.0}`,
		"bad gender":     `{"name":"Ravi","city":"Delhi","age":30,"gender":"unknown","height":1.75,"weight":75.0}`,
		"zero height":    `{"name":"Ravi","city":"Delhi","age":30,"gender":"male","height":0,"weight":75.0}`,
		"missing name":   `{"city":"Delhi","age":30,"gender":"male","height":1.75,"weight":75.0}`,
		"missing weight": `{"name":"Ravi","city":"Delhi","age":30,"gender":"male","height":1.75}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Create(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
			if _, ok := he.Message.([]httperr.FieldError); !ok {
				t.Errorf("expected field errors, got %T", he.Message)
			}
		})
	}
}

func TestHandler_Get(t *testing.T) {
	h, e := newTestHandler()
	id := createTestPatient(t, h, e)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.ID != id {
		t.Errorf("expected id %d, got %d", id, resp.ID)
	}
	if resp.Verdict == "" {
		t.Error("expected verdict in body")
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()

	// Unknown numeric id and non-numeric id both look like a missing record.
	for _, id := range []string{"99", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)

		err := h.Get(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %v", id, err)
		}
		if he.Message != "Patient not found" {
			t.Errorf("id %q: unexpected message %v", id, he.Message)
		}
	}
}

func TestHandler_Update(t *testing.T) {
	h, e := newTestHandler()
	createTestPatient(t, h, e)

	body := `{"weight":95.0}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Weight != 95.0 {
		t.Errorf("expected weight 95, got %v", resp.Weight)
	}
	if resp.Name != "Ravi" {
		t.Errorf("untouched field changed: %q", resp.Name)
	}
	if resp.BMI != 31.02 || resp.Verdict != "Obese" {
		t.Errorf("expected recomputed bmi 31.02 Obese, got %v %q", resp.BMI, resp.Verdict)
	}
}

func TestHandler_Update_InvalidPatch(t *testing.T) {
	h, e := newTestHandler()
	createTestPatient(t, h, e)

	// Present fields are validated even in a partial patch.
	body := `{"age":0}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, e := newTestHandler()
	createTestPatient(t, h, e)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Patient deleted successfully" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Delete_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_List_Empty(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list must serialize as [], got %s", got)
	}
}

func TestHandler_List(t *testing.T) {
	h, e := newTestHandler()
	createTestPatient(t, h, e)
	createTestPatient(t, h, e)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp []Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(resp))
	}
	for _, r := range resp {
		if r.BMI == 0 || r.Verdict == "" {
			t.Errorf("derived fields missing from list entry: %+v", r)
		}
	}
}
