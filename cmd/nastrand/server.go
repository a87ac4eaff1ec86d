package main

import (
	"encoding/json"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/daniacca/nastrand/internal/driver"
	"github.com/daniacca/nastrand/internal/kinetics"
	"github.com/daniacca/nastrand/internal/metrics"
	"github.com/daniacca/nastrand/internal/nucleic"
	"github.com/daniacca/nastrand/internal/trajectory"
	"github.com/daniacca/nastrand/internal/trajectory/notifiers"
)

// Server is the one-environment-at-a-time HTTP mode: a single live
// ensemble, stepped by POST /tick, mirroring cmd/achemdb-server.Server's
// single-mutex-guarded-state shape.
type Server struct {
	mu       sync.RWMutex
	ensemble *kinetics.Ensemble
	em       *nucleic.SimpleEnergyModel
	rng      *rand.Rand
	simTime  float64
	steps    int

	logger    *Logger
	metricsReg *metrics.Registry
	notifMgr  *trajectory.NotificationManager
	ws        *notifiers.WebSocketNotifier
	runID     string
}

// NewServer creates a server with no ensemble loaded until /schema is
// posted.
func NewServer(logger *Logger) *Server {
	ws := notifiers.NewWebSocketNotifier("serve-ws")
	notifMgr := trajectory.NewNotificationManager(logger)
	_ = notifMgr.RegisterNotifier(ws)

	return &Server{
		logger:     logger,
		metricsReg: metrics.NewRegistry(),
		notifMgr:   notifMgr,
		ws:         ws,
		runID:      "serve",
	}
}

// Close releases the server's background resources.
func (s *Server) Close() error {
	return s.notifMgr.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// POST /schema
// Body: driver.Config JSON (only the energy-model, complexes and seed
// fields are consumed; stop_conditions/mode are ignored in serve mode).
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var cfg driver.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid config json: "+err.Error(), http.StatusBadRequest)
		return
	}

	em := cfg.BuildEnergyModel()
	ensemble, err := driver.BuildEnsemble(cfg, em)
	if err != nil {
		http.Error(w, "cannot build ensemble: "+err.Error(), http.StatusBadRequest)
		return
	}
	ensemble.Initialize()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.mu.Lock()
	s.ensemble = ensemble
	s.em = em
	s.rng = rand.New(rand.NewSource(seed))
	s.simTime = 0
	s.steps = 0
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("schema loaded"))
}

// POST /complex
// Body: driver.ComplexConfig JSON. Inserts a complex into the live
// ensemble.
func (s *Server) handleInsertComplex(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensemble == nil {
		http.Error(w, "no schema loaded", http.StatusBadRequest)
		return
	}

	var cc driver.ComplexConfig
	if err := json.NewDecoder(r.Body).Decode(&cc); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	c, err := driver.BuildComplex(cc, s.em)
	if err != nil {
		http.Error(w, "cannot build complex: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.ensemble.Add(c)
	s.ensemble.Initialize()

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// POST /tick
// Draws one (choice, dt) pair from the server's seeded source and
// dispatches a single step.
func (s *Server) handleTick(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensemble == nil {
		http.Error(w, "no schema loaded", http.StatusBadRequest)
		return
	}

	total := s.ensemble.TotalFlux()
	if total <= 0 {
		http.Error(w, "ensemble is in a dead state (total flux is zero)", http.StatusConflict)
		return
	}

	choice := s.rng.Float64() * total
	dt := -math.Log(s.rng.Float64()) / total
	s.simTime += dt

	start := time.Now()
	result := s.ensemble.Step(choice, s.simTime)
	duration := time.Since(start).Seconds()
	s.steps++

	s.metricsReg.ObserveStep(result, duration, s.ensemble.Count())

	ev := trajectory.NewStepEvent(s.runID, s.steps, s.simTime, result, s.ensemble.TotalFlux(), time.Now().Unix())
	s.notifMgr.Enqueue(ev, []string{s.ws.ID()})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ev)
}

// GET /complexes
func (s *Server) handleListComplexes(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ensemble == nil {
		http.Error(w, "no schema loaded", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.ensemble.Dumps()); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// GET /ws — upgrades to a websocket trajectory subscription.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := s.ws.GetUpgrader()
	upgrader.CheckOrigin = func(*http.Request) bool { return true }
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("server: websocket upgrade failed: %v", err)
		return
	}
	s.ws.RegisterClient(conn)
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/complex", s.handleInsertComplex)
	mux.HandleFunc("/tick", s.handleTick)
	mux.HandleFunc("/complexes", s.handleListComplexes)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", s.metricsReg.Handler())
}
