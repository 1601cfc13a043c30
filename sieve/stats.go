package sieve

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Statistics tracks counters for a single Compute run. Create one with
// NewStatistics, call Start before the run and Finish after it; Compute
// fills the counters when handed the struct via Options.
type Statistics struct {
	Enabled bool

	Lo           uint64 `json:"lo"`
	Hi           uint64 `json:"hi"`
	Mode         string `json:"mode"`
	SegmentBytes uint64 `json:"segmentBytes"`

	BasePrimeCount int `json:"basePrimeCount"`
	SegmentCount   int `json:"segmentCount"`
	PrimesFound    int `json:"primesFound"`

	Duration     time.Duration `json:"durationNs"`
	PrimesPerSec float64       `json:"primesPerSec"`

	startTime time.Time
}

// NewStatistics creates an enabled statistics collector.
func NewStatistics() *Statistics {
	return &Statistics{Enabled: true}
}

// Start records the start of the run.
func (s *Statistics) Start() {
	if !s.Enabled {
		return
	}
	s.startTime = time.Now()
}

// Finish records the end of the run and computes derived rates.
func (s *Statistics) Finish() {
	if !s.Enabled {
		return
	}
	s.Duration = time.Since(s.startTime)
	if secs := s.Duration.Seconds(); secs > 0 {
		s.PrimesPerSec = float64(s.PrimesFound) / secs
	}
}

// ExportJSON writes the statistics as indented JSON.
func (s *Statistics) ExportJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// ExportCSV writes the statistics as a two-row CSV (header, values).
func (s *Statistics) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"lo", "hi", "mode", "segment_bytes",
		"base_primes", "segments", "primes_found",
		"duration_seconds", "primes_per_sec",
	}
	values := []string{
		strconv.FormatUint(s.Lo, 10),
		strconv.FormatUint(s.Hi, 10),
		s.Mode,
		strconv.FormatUint(s.SegmentBytes, 10),
		strconv.Itoa(s.BasePrimeCount),
		strconv.Itoa(s.SegmentCount),
		strconv.Itoa(s.PrimesFound),
		strconv.FormatFloat(s.Duration.Seconds(), 'f', 6, 64),
		strconv.FormatFloat(s.PrimesPerSec, 'f', 2, 64),
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(values); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// String returns a short human-readable summary.
func (s *Statistics) String() string {
	return fmt.Sprintf("%s [%d, %d]: %d primes, %d base primes, %d segments, %.3fs (%.0f primes/s)",
		s.Mode, s.Lo, s.Hi, s.PrimesFound, s.BasePrimeCount, s.SegmentCount,
		s.Duration.Seconds(), s.PrimesPerSec)
}
