package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfeel220/saihu/result"
)

const tandemJSON = `{
  "servers": [
    {"name": "s0", "service_curve": {"rates": ["4"], "latencies": ["1"]}},
    {"name": "s1", "service_curve": {"rates": ["4"], "latencies": ["1"]}}
  ],
  "flows": [
    {"name": "f0", "path": ["s0", "s1"], "arrival_curve": {"rates": ["1"], "bursts": ["1"]}}
  ]
}`

func TestLoadNetwork_GuessesFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	require.NoError(t, os.WriteFile(path, []byte(tandemJSON), 0o644))

	net, err := loadNetwork(path, "")
	require.NoError(t, err)
	require.Len(t, net.Servers, 2)
}

func TestLoadNetwork_ExplicitFormatOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.txt")
	require.NoError(t, os.WriteFile(path, []byte(tandemJSON), 0o644))

	net, err := loadNetwork(path, "json")
	require.NoError(t, err)
	require.Len(t, net.Flows, 1)
}

func TestLoadNetwork_UnknownFormatErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	require.NoError(t, os.WriteFile(path, []byte(tandemJSON), 0o644))

	_, err := loadNetwork(path, "protobuf")
	require.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	agg := result.NewAggregator()
	agg.Add(result.MethodResult{
		Method:         "tfa",
		PerFlowDelay:   map[string]float64{"f0": 2.0},
		PerServerDelay: map[string]float64{"s0": 1.0, "s1": 1.0},
		ExecTime:       5 * time.Millisecond,
	})

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, agg.Report()))

	out := buf.String()
	assert.Contains(t, out, "Flow delays")
	assert.Contains(t, out, "f0")
	assert.Contains(t, out, "best=2")
	assert.Contains(t, out, "Server delays")
	assert.Contains(t, out, "s0")
	assert.Contains(t, out, "Execution time")
	assert.Contains(t, out, "tfa")
}
