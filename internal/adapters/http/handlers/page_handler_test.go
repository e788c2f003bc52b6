package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/project-board/internal/app"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
	"github.com/jsamuelsen11/project-board/internal/ui/page"
)

func pageProps() page.Props {
	return page.Props{Title: "Project Board", WSPath: "/ws", StaticPrefix: "/static"}
}

func TestPageHandler_Board(t *testing.T) {
	t.Parallel()

	store := app.NewProjectStore(nil, nil)
	store.AddProject(context.Background(), "Build a deck <now>", validDescription, 3)
	h := handlers.NewPageHandler(store, pageProps())

	rec := httptest.NewRecorder()
	h.Board(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requireStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`data-ws="/ws"`,
		`/static/board.js`,
		`id="app"`,
		`id="user-input"`,
		"ACTIVE PROJECTS",
		"FINISHED PROJECTS",
		"Build a deck &lt;now&gt;",
		"3 persons assigned",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if n := store.ListenerCount(); n != 0 {
		t.Errorf("ListenerCount() = %d after render, want 0", n)
	}
}

func TestPageHandler_BrokenMarkup(t *testing.T) {
	t.Parallel()

	store := app.NewProjectStore(nil, nil)
	h := handlers.NewPageHandler(store, pageProps()).WithDocumentFactory(func() (*dom.Document, error) {
		return dom.ParseString(`<html><body><div id="app"></div></body></html>`)
	})

	rec := httptest.NewRecorder()
	h.Board(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requireStatus(t, rec, http.StatusInternalServerError)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestPageHandler_BoardWhileStoreMutates(t *testing.T) {
	t.Parallel()

	store := app.NewProjectStore(nil, nil)
	store.AddProject(context.Background(), "Seed", validDescription, 1)
	h := handlers.NewPageHandler(store, pageProps())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	var maxListeners int
	wg.Go(func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			store.AddProject(context.Background(), "Concurrent", validDescription, 2)
			maxListeners = max(maxListeners, store.ListenerCount())
		}
	})

	for i := range 200 {
		rec := httptest.NewRecorder()
		h.Board(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("render %d: status = %d, want 200", i, rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{`id="active-project-list"`, `id="finished-project-list"`, "</html>"} {
			if !strings.Contains(body, want) {
				t.Fatalf("render %d: page missing %q", i, want)
			}
		}
	}
	close(stop)
	wg.Wait()

	if maxListeners != 0 {
		t.Errorf("store had %d listeners during page renders, want 0", maxListeners)
	}
}
