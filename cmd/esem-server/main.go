// Command esem-server runs the Server role (component C7): it holds
// one or all L round public tables and answers the request/reply
// protocol from spec §4.6, alongside a small JSON-over-HTTP control
// plane (/health, /internal/status) in the teacher daemon's idiom.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/readytrader/esem/internal/config"
	"github.com/readytrader/esem/internal/esem"
	"github.com/readytrader/esem/internal/transport"
)

type state struct {
	mu       sync.Mutex
	variant  esem.Variant
	mode     string
	rounds   []int // round indices this process serves
	listener *transport.MultiplexedListener
	started  bool
	lastErr  string
}

func (s *state) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

func (s *state) statusJSON() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	addr := ""
	if s.listener != nil {
		addr = s.listener.Addr().String()
	}
	return map[string]any{
		"variant":  s.variant.String(),
		"mode":     s.mode,
		"rounds":   s.rounds,
		"started":  s.started,
		"listen":   addr,
		"last_error": s.lastErr,
	}
}

func writeJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(obj)
}

func main() {
	variant := config.ParseVariant(config.EnvDefault("ESEM_VARIANT", "v2"))
	keyDir := config.MustEnv("ESEM_KEY_DIR")
	listenAddr := config.MustEnv("ESEM_LISTEN_ADDR")
	httpAddr := config.EnvDefault("ESEM_HTTP_LISTEN", "0.0.0.0:8788")
	mode := config.EnvDefault("ESEM_LISTEN_MODE", "multiplexed")
	roundTimeout := 30 * time.Second

	params, err := esem.ParamsFor(variant)
	if err != nil {
		log.Fatalf("invalid variant: %v", err)
	}

	st := &state{variant: variant, mode: mode}

	var handlers []transport.RoundHandler
	switch mode {
	case "multiplexed":
		for j := 0; j < params.L; j++ {
			subkey, public, err := esem.LoadServerMaterial(keyDir, variant, j)
			if err != nil {
				log.Fatalf("failed to load round %d material: %v", j, err)
			}
			srv, err := esem.NewServer(variant, subkey, public)
			if err != nil {
				log.Fatalf("failed to build round %d server: %v", j, err)
			}
			handlers = append(handlers, srv.Handle)
			st.rounds = append(st.rounds, j)
		}
	case "distinct":
		roundRaw := config.MustEnv("ESEM_ROUND")
		round, perr := strconv.Atoi(strings.TrimSpace(roundRaw))
		if perr != nil || round < 0 || round >= params.L {
			log.Fatalf("invalid ESEM_ROUND=%q (expected 0..%d)", roundRaw, params.L-1)
		}
		subkey, public, err := esem.LoadServerMaterial(keyDir, variant, round)
		if err != nil {
			log.Fatalf("failed to load round %d material: %v", round, err)
		}
		srv, err := esem.NewServer(variant, subkey, public)
		if err != nil {
			log.Fatalf("failed to build round %d server: %v", round, err)
		}
		handlers = []transport.RoundHandler{srv.Handle}
		st.rounds = []int{round}
	default:
		log.Fatalf("invalid ESEM_LISTEN_MODE=%q (expected multiplexed or distinct)", mode)
	}

	ln, err := transport.Listen(listenAddr, handlers, roundTimeout)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", listenAddr, err)
	}
	st.mu.Lock()
	st.listener = ln
	st.started = true
	st.mu.Unlock()

	go func() {
		err := ln.Serve(func(err error) {
			log.Printf("esem-server: connection error: %v", err)
			st.setErr(err)
		})
		if err != nil {
			log.Fatalf("esem-server: listener stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"ok": true, "status": st.statusJSON()})
	})
	mux.HandleFunc("/internal/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, st.statusJSON())
	})

	log.Printf("esem-server: variant=%s mode=%s rounds=%v listening on %s (http %s)",
		variant, mode, st.rounds, listenAddr, httpAddr)
	log.Fatal(http.ListenAndServe(httpAddr, mux))
}
