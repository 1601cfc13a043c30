package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kztmrngs/FastSieve/sieve"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
	})
}

// handlePrimes handles GET /api/v1/primes?lo=&hi=&limit=
func (s *Server) handlePrimes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET is supported")
		return
	}

	lo, hi, mode, ok := s.parseRange(w, r)
	if !ok {
		return
	}

	maxList := s.cfg.API.MaxList
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid limit %q", v))
			return
		}
		if n < maxList {
			maxList = n
		}
	}

	start := time.Now()
	primes, err := sieve.ComputeWithOptions(lo, hi, mode, sieve.Options{
		SegmentBytes: s.cfg.Sieve.SegmentBytes,
	})
	elapsed := time.Since(start)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Sieve failed: %v", err))
		return
	}

	resp := PrimesResponse{
		Lo:        lo,
		Hi:        hi,
		Count:     len(primes),
		Primes:    primes,
		DurationS: elapsed.Seconds(),
	}
	if len(primes) > maxList {
		resp.Primes = primes[:maxList]
		resp.Truncated = true
	}
	if resp.Primes == nil {
		resp.Primes = []uint64{}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCount handles GET /api/v1/count?lo=&hi=
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET is supported")
		return
	}

	lo, hi, mode, ok := s.parseRange(w, r)
	if !ok {
		return
	}

	start := time.Now()
	primes, err := sieve.ComputeWithOptions(lo, hi, mode, sieve.Options{
		SegmentBytes: s.cfg.Sieve.SegmentBytes,
	})
	elapsed := time.Since(start)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Sieve failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{
		Lo:        lo,
		Hi:        hi,
		Count:     len(primes),
		DurationS: elapsed.Seconds(),
	})
}

// parseRange extracts and validates lo/hi query parameters. hi is required;
// lo defaults to 2 (all mode). The span is capped so one request cannot tie
// up the server arbitrarily long. On failure it writes the error response
// and returns ok=false.
func (s *Server) parseRange(w http.ResponseWriter, r *http.Request) (lo, hi uint64, mode sieve.Mode, ok bool) {
	q := r.URL.Query()

	hiStr := q.Get("hi")
	if hiStr == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameter hi")
		return 0, 0, 0, false
	}
	hi, err := strconv.ParseUint(hiStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid hi %q", hiStr))
		return 0, 0, 0, false
	}

	lo = 2
	mode = sieve.ModeAll
	if loStr := q.Get("lo"); loStr != "" {
		lo, err = strconv.ParseUint(loStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid lo %q", loStr))
			return 0, 0, 0, false
		}
		mode = sieve.ModeRange
	}

	span := hi
	if mode == sieve.ModeRange {
		if lo > hi {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("lo %d exceeds hi %d", lo, hi))
			return 0, 0, 0, false
		}
		span = hi - lo
	}
	if span > s.cfg.API.MaxSpan {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Range spans %d integers, exceeding the server limit of %d", span, s.cfg.API.MaxSpan))
		return 0, 0, 0, false
	}

	return lo, hi, mode, true
}
