package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/pkg/argument"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i any) error {
	return tv.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target string) (*middleware.AppContext, *httptest.ResponseRecorder) {
	t.Helper()

	reg, err := registry.New(filepath.Join(t.TempDir(), "papers.db"))
	if err != nil {
		t.Fatalf("opening registry: %v", err)
	}
	t.Cleanup(func() { reg.Close() })

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return &middleware.AppContext{Context: c, App: &middleware.App{Registry: reg}}, rec
}

func TestGetPaperHandlerRejectsEmptyID(t *testing.T) {
	cc, _ := newTestContext(t, http.MethodGet, "/api/papers/")
	cc.SetParamNames("id")
	cc.SetParamValues("")

	err := GetPaperHandler(cc)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", httpErr.Code, http.StatusBadRequest)
	}
}

func TestDeletePaperHandlerRejectsEmptyID(t *testing.T) {
	cc, _ := newTestContext(t, http.MethodDelete, "/api/papers/")
	cc.SetParamNames("id")
	cc.SetParamValues("")

	err := DeletePaperHandler(cc)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", httpErr.Code, http.StatusBadRequest)
	}
}

func TestGetPaperHandlerReturnsStoredPaper(t *testing.T) {
	cc, rec := newTestContext(t, http.MethodGet, "/api/papers/")

	g := argument.NewGraph()
	g.AddNode(argument.Component{ID: "P1-C1", Type: "Claim", Text: "stored claim", Page: 1})
	saved, err := cc.App.Registry.Save(cc.Request().Context(), "paper.pdf", "hash-1", 3, g.Output())
	if err != nil {
		t.Fatalf("saving paper: %v", err)
	}

	cc.SetParamNames("id")
	cc.SetParamValues(saved.ID)

	if err := GetPaperHandler(cc); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got registry.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != saved.ID {
		t.Fatalf("id = %q, want %q", got.ID, saved.ID)
	}
	if len(got.Graph.Nodes) != 1 || got.Graph.Nodes[0].Text != "stored claim" {
		t.Fatalf("unexpected graph in response: %+v", got.Graph)
	}
}

func TestGetPaperHandlerNotFound(t *testing.T) {
	cc, _ := newTestContext(t, http.MethodGet, "/api/papers/")
	cc.SetParamNames("id")
	cc.SetParamValues("does-not-exist")

	err := GetPaperHandler(cc)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", httpErr.Code, http.StatusNotFound)
	}
}
