package sieve

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsExportJSON(t *testing.T) {
	stats := NewStatistics()
	stats.Start()
	_, err := ComputeWithOptions(2, 10_000, ModeAll, Options{Stats: stats, SegmentBytes: 64})
	require.NoError(t, err)
	stats.Finish()

	var buf bytes.Buffer
	require.NoError(t, stats.ExportJSON(&buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(10_000), decoded["hi"])
	assert.Equal(t, "all", decoded["mode"])
	assert.Equal(t, float64(1229), decoded["primesFound"])
}

func TestStatisticsExportCSV(t *testing.T) {
	stats := NewStatistics()
	stats.Lo = 2
	stats.Hi = 100
	stats.Mode = "all"
	stats.SegmentBytes = 1024
	stats.PrimesFound = 25

	var buf bytes.Buffer
	require.NoError(t, stats.ExportCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "lo,hi,mode"))
	assert.True(t, strings.HasPrefix(lines[1], "2,100,all,1024,"))
}

func TestStatisticsDisabledIsInert(t *testing.T) {
	var stats Statistics
	stats.Start()
	stats.Finish()
	assert.Zero(t, stats.Duration)
	assert.Zero(t, stats.PrimesPerSec)
}
