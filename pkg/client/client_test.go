package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daniacca/nastrand/internal/driver"
	"github.com/daniacca/nastrand/internal/trajectory"
)

// testServer stands in for enough of cmd/nastrand serve's routes to
// exercise Client without importing the main package.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	var lastComplexes []driver.ComplexConfig

	mux := http.NewServeMux()
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		var cfg driver.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		lastComplexes = cfg.Complexes
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/complex", func(w http.ResponseWriter, r *http.Request) {
		var cc driver.ComplexConfig
		if err := json.NewDecoder(r.Body).Decode(&cc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		lastComplexes = append(lastComplexes, cc)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/tick", func(w http.ResponseWriter, r *http.Request) {
		ev := trajectory.StepEvent{RunID: "test", Step: 1, SimTime: 0.5}
		_ = json.NewEncoder(w).Encode(ev)
	})
	mux.HandleFunc("/complexes", func(w http.ResponseWriter, r *http.Request) {
		dumps := make([]map[string]any, len(lastComplexes))
		for i, cc := range lastComplexes {
			dumps[i] = map[string]any{"name": cc.Name}
		}
		_ = json.NewEncoder(w).Encode(dumps)
	})

	return httptest.NewServer(mux)
}

func TestClient_LoadSchemaAndInsertComplex(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()
	c := New(srv.URL)

	cfg := driver.Config{
		TemperatureK: 310.15,
		Complexes: []driver.ComplexConfig{
			{Kind: "single", StrandID: 1, Name: "a", Sequence: "AAAA"},
		},
	}
	if err := c.LoadSchema(context.Background(), cfg); err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	cc := driver.ComplexConfig{Kind: "single", StrandID: 2, Name: "b", Sequence: "TTTT"}
	if err := c.InsertComplex(context.Background(), cc); err != nil {
		t.Fatalf("InsertComplex: %v", err)
	}

	dumps, err := c.ListComplexes(context.Background())
	if err != nil {
		t.Fatalf("ListComplexes: %v", err)
	}
	if len(dumps) != 2 {
		t.Fatalf("expected 2 dumps, got %d", len(dumps))
	}
}

func TestClient_Tick(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()
	c := New(srv.URL)

	ev, err := c.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if ev.RunID != "test" || ev.Step != 1 {
		t.Errorf("Tick() = %+v, want RunID=test Step=1", ev)
	}
}

func TestClient_ListComplexes_PropagatesServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/complexes", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no schema loaded", http.StatusBadRequest)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListComplexes(context.Background()); err == nil {
		t.Fatal("expected an error from a 400 response")
	}
}

func TestClient_TickRespectsContextTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tick", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(trajectory.StepEvent{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	if _, err := c.Tick(ctx); err == nil {
		t.Fatal("expected a context-deadline error")
	}
}
