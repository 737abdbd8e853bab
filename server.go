package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"
)

const maxBodySize = 1 << 20 // 1 Mo

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	// Cleanup stale entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.visitors {
				if time.Since(b.lastSeen) > 5*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	// Refill tokens based on elapsed time.
	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens += refill * rl.rate
		if b.tokens > rl.rate {
			b.tokens = rl.rate
		}
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Server is the main HTTP server.
type Server struct {
	mux      *http.ServeMux
	store    *Store
	gemini   *GeminiClient
	sse      *Broadcaster
	createRL *rateLimiter
	solveRL  *rateLimiter
}

// NewServer creates a configured HTTP server.
func NewServer(store *Store, gemini *GeminiClient) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		store:    store,
		gemini:   gemini,
		sse:      NewBroadcaster(),
		createRL: newRateLimiter(10, time.Minute), // 10 creations/min per IP
		solveRL:  newRateLimiter(30, time.Minute), // 30 solves/min per IP
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/puzzles", s.handleCreatePuzzle)
	s.mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	s.mux.HandleFunc("GET /api/puzzles/{id}", s.handleGetPuzzle)
	s.mux.HandleFunc("POST /api/puzzles/generate", s.handleGeneratePuzzle)

	s.mux.HandleFunc("POST /api/puzzles/{id}/solve", s.handleSolvePuzzle)
	s.mux.HandleFunc("GET /api/puzzles/{id}/solution", s.handleGetSolution)
	s.mux.HandleFunc("GET /api/puzzles/{id}/report", s.handleReport)
	s.mux.HandleFunc("GET /api/puzzles/{id}/events", s.handleSolveEvents)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; connect-src 'self'")
	s.mux.ServeHTTP(w, r)
}

// --- Puzzle handlers ---

// POST /api/puzzles — create a puzzle from a word list and grid rows.
func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req struct {
		Name  string   `json:"name"`
		Words []string `json:"words"`
		Grid  []string `json:"grid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	puzzle, err := NewPuzzle(req.Name, req.Words, req.Grid)
	if err != nil {
		log.Printf("invalid puzzle: %v", err)
		jsonError(w, "Liste de mots et grille rectangulaire requises", http.StatusBadRequest)
		return
	}

	s.store.SavePuzzle(puzzle)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// GET /api/puzzles — list all puzzles.
func (s *Server) handleListPuzzles(w http.ResponseWriter, _ *http.Request) {
	puzzles := s.store.ListPuzzles()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzles)
}

// GET /api/puzzles/{id} — get a single puzzle.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzle)
}

// POST /api/puzzles/generate — generate a themed puzzle with Gemini.
func (s *Server) handleGeneratePuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	if s.gemini == nil {
		jsonError(w, "Génération de grille non configurée", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Theme string `json:"theme"`
		Size  int    `json:"size"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		jsonError(w, "Champ 'theme' requis", http.StatusBadRequest)
		return
	}
	if req.Size <= 0 {
		req.Size = defaultGridSize
	}
	if req.Count <= 0 {
		req.Count = defaultWordCount
	}

	puzzle, err := s.gemini.GeneratePuzzle(r.Context(), req.Theme, req.Size, req.Count)
	if err != nil {
		log.Printf("gemini generate error: %v", err)
		jsonError(w, "Erreur lors de la génération de la grille", http.StatusInternalServerError)
		return
	}

	s.store.SavePuzzle(puzzle)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// --- Solution handlers ---

// solve runs the solver on a puzzle, broadcasts progress events and
// stores the resulting solution.
func (s *Server) solve(puzzle *Puzzle) *Solution {
	start := time.Now()
	result := Solve(puzzle.Words, puzzle.Rows)

	// Per-word events in sorted order, so watchers see a stable
	// sequence.
	words := make([]string, 0, len(result))
	for word := range result {
		words = append(words, word)
	}
	sort.Strings(words)

	for _, word := range words {
		evtType := "word_found"
		matches := 0
		for _, locs := range result[word] {
			matches += len(locs)
		}
		if matches == 0 {
			evtType = "word_missing"
		}
		s.sse.BroadcastEvent(puzzle.ID, map[string]any{
			"type":    evtType,
			"word":    word,
			"matches": matches,
		})
	}

	sol := s.store.SaveSolution(&Solution{
		PuzzleID: puzzle.ID,
		Found:    result,
		Words:    len(result),
		Matched:  result.Matched(),
		Duration: time.Since(start),
	})

	s.sse.BroadcastEvent(puzzle.ID, map[string]any{
		"type":    "solved",
		"words":   sol.Words,
		"matched": sol.Matched,
	})

	return sol
}

// POST /api/puzzles/{id}/solve — solve a puzzle and return the solution.
func (s *Server) handleSolvePuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.solveRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	sol := s.solve(puzzle)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sol)
}

// GET /api/puzzles/{id}/solution — get the last solution.
func (s *Server) handleGetSolution(w http.ResponseWriter, r *http.Request) {
	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	sol := s.store.GetSolution(puzzle.ID)
	if sol == nil {
		jsonError(w, "Grille non résolue", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sol)
}

// GET /api/puzzles/{id}/report — plain-text report, solving on demand.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	sol := s.store.GetSolution(puzzle.ID)
	if sol == nil {
		sol = s.solve(puzzle)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := WriteReport(w, sol.Found); err != nil {
		log.Printf("write report: %v", err)
	}
}

// GET /api/puzzles/{id}/events — SSE stream of solve progress.
func (s *Server) handleSolveEvents(w http.ResponseWriter, r *http.Request) {
	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	s.sse.ServeSSE(w, r, puzzle.ID, func(sub *subscriber) {
		// Send the current solution state on connect.
		if sol := s.store.GetSolution(puzzle.ID); sol != nil {
			evt, _ := json.Marshal(map[string]any{
				"type":    "solved",
				"words":   sol.Words,
				"matched": sol.Matched,
			})
			sub.ch <- string(evt)
		}
	})
}

// --- Helpers ---

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
