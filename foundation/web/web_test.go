package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/foundation/web"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type request struct {
	Name string `json:"name"`
}

func (r request) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestApp(t *testing.T) {
	t.Log("Given the need to route requests through the app.")
	{
		shutdown := make(chan os.Signal, 1)

		var order []string
		mw := func(name string) web.Middleware {
			return func(handler web.Handler) web.Handler {
				return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
					order = append(order, name)
					return handler(ctx, w, r)
				}
			}
		}

		app := web.NewApp(shutdown, mw("app"))

		app.Handle(http.MethodPost, "v1", "/echo/:id", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var req request
			if err := web.Decode(r, &req); err != nil {
				return web.Respond(ctx, w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
			}

			v, err := web.GetValues(ctx)
			if err != nil || v.TraceID == "" {
				return web.NewShutdownError("web value missing from context")
			}

			return web.Respond(ctx, w, map[string]string{"id": web.Param(r, "id"), "name": req.Name}, http.StatusOK)
		}, mw("route"))

		app.Handle(http.MethodGet, "v1", "/broken", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			return web.NewShutdownError("integrity issue")
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo/7", strings.NewReader(`{"name":"bill"}`)))

		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"7"`) || !strings.Contains(w.Body.String(), `"name":"bill"`) {
			t.Fatalf("\t%s\tShould route with params: %d %s", failed, w.Code, w.Body.String())
		}
		t.Logf("\t%s\tShould route with params.", success)

		if strings.Join(order, ",") != "app,route" {
			t.Fatalf("\t%s\tShould run app middleware before route middleware: %v", failed, order)
		}
		t.Logf("\t%s\tShould run app middleware before route middleware.", success)

		w = httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo/7", strings.NewReader(`{"name":""}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould validate the decoded value: %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould validate the decoded value.", success)

		w = httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo/7", strings.NewReader(`{"other":1}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould reject unknown fields: %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould reject unknown fields.", success)

		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/broken", nil))
		select {
		case <-shutdown:
			t.Logf("\t%s\tShould signal shutdown on a shutdown error.", success)
		default:
			t.Fatalf("\t%s\tShould signal shutdown on a shutdown error.", failed)
		}
	}
}
