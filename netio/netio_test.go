package netio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/netio"
)

const tandemJSON = `{
  "network": {"units": {"time": "s", "data": "b", "rate": "bps"}},
  "servers": [
    {"name": "s0", "service_curve": {"rates": ["4"], "latencies": ["1"]}, "capacity": "10"},
    {"name": "s1", "service_curve": {"rates": ["4"], "latencies": ["1"]}, "capacity": "10"}
  ],
  "flows": [
    {"name": "f0", "path": ["s0", "s1"], "arrival_curve": {"rates": ["1"], "bursts": ["1"]}},
    {"name": "f1", "path": ["s0"], "arrival_curve": {"rates": ["1"], "bursts": ["1"]}},
    {"name": "f2", "path": ["s1"], "arrival_curve": {"rates": ["1"], "bursts": ["1"]}}
  ]
}`

func TestDecodeJSON_Tandem(t *testing.T) {
	net, err := netio.DecodeJSON(strings.NewReader(tandemJSON))
	require.NoError(t, err)
	require.Len(t, net.Servers, 2)
	require.Len(t, net.Flows, 3)

	s0, ok := net.Server("s0")
	require.True(t, ok)
	rl, ok := s0.Service.(curve.RateLatency)
	require.True(t, ok)
	assert.InDelta(t, 4.0, rl.Rate, 1e-9)
	assert.InDelta(t, 1.0, rl.Latency, 1e-9)
	assert.InDelta(t, 10.0, s0.Capacity, 1e-9)

	f0, ok := net.Flow("f0")
	require.True(t, ok)
	lb, ok := f0.Arrival.(curve.LeakyBucket)
	require.True(t, ok)
	assert.InDelta(t, 1.0, lb.Rate, 1e-9)
	assert.InDelta(t, 1.0, lb.Burst, 1e-9)
	assert.Equal(t, []string{"s0", "s1"}, f0.Path)
}

func TestDecodeJSON_UnitSuffixesAndMultipliers(t *testing.T) {
	doc := `{
      "servers": [{"name": "s0", "service_curve": {"rates": ["10Mbps"], "latencies": ["2ms"]}, "capacity": "10Mbps", "max_packet_length": "1500b"}],
      "flows": [{"name": "f0", "path": ["s0"], "arrival_curve": {"rates": ["1Mbps"], "bursts": ["1kb"]}}]
    }`
	net, err := netio.DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)

	s0, ok := net.Server("s0")
	require.True(t, ok)
	rl := s0.Service.(curve.RateLatency)
	assert.InDelta(t, 10e6, rl.Rate, 1e-6)
	assert.InDelta(t, 2e-3, rl.Latency, 1e-12)
	assert.InDelta(t, 1500.0, s0.MaxPacketLength, 1e-9)

	f0, ok := net.Flow("f0")
	require.True(t, ok)
	lb := f0.Arrival.(curve.LeakyBucket)
	assert.InDelta(t, 1e6, lb.Rate, 1e-3)
	assert.InDelta(t, 1000.0, lb.Burst, 1e-9)
}

func TestDecodeJSON_MulticastFlow(t *testing.T) {
	doc := `{
      "servers": [
        {"name": "s0", "service_curve": {"rates": ["4"], "latencies": ["1"]}},
        {"name": "s1", "service_curve": {"rates": ["4"], "latencies": ["1"]}},
        {"name": "s2", "service_curve": {"rates": ["4"], "latencies": ["1"]}}
      ],
      "flows": [
        {"name": "f0", "path": ["s0", "s1"], "arrival_curve": {"rates": ["1"], "bursts": ["1"]},
         "multicast": [{"name": "branch", "path": ["s0", "s2"]}]}
      ]
    }`
	net, err := netio.DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)

	f0, ok := net.Flow("f0")
	require.True(t, ok)
	all := f0.AllPaths()
	assert.Equal(t, []string{"s0", "s1"}, all[""])
	assert.Equal(t, []string{"s0", "s2"}, all["branch"])
}

func TestDecodeJSON_MismatchedCurveLengthsErrors(t *testing.T) {
	doc := `{
      "servers": [{"name": "s0", "service_curve": {"rates": ["4", "5"], "latencies": ["1"]}}],
      "flows": [{"name": "f0", "path": ["s0"], "arrival_curve": {"rates": ["1"], "bursts": ["1"]}}]
    }`
	_, err := netio.DecodeJSON(strings.NewReader(doc))
	require.ErrorIs(t, err, netio.ErrMismatchedCurveLengths)
}

func TestDecodeYAML_Tandem(t *testing.T) {
	doc := "servers:\n" +
		"  - name: s0\n    service_curve:\n      rates: [\"4\"]\n      latencies: [\"1\"]\n" +
		"flows:\n" +
		"  - name: f0\n    path: [s0]\n    arrival_curve:\n      rates: [\"1\"]\n      bursts: [\"1\"]\n"
	net, err := netio.DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)
	_, ok := net.Server("s0")
	assert.True(t, ok)
	_, ok = net.Flow("f0")
	assert.True(t, ok)
}

const tandemWOPANet = `<?xml version="1.0"?>
<network name="tandem">
  <station name="s0" service-rate="4" service-latency="1" capacity="10"/>
  <station name="s1" service-rate="4" service-latency="1" capacity="10"/>
  <link from="s0" to="s1" fromPort="0" toPort="0"/>
  <flow name="f0" source="s0" rate="1" burst="1">
    <target name="p0">
      <path node="s1"/>
    </target>
  </flow>
</network>`

func TestDecodeWOPANet_Tandem(t *testing.T) {
	net, err := netio.DecodeWOPANet(strings.NewReader(tandemWOPANet))
	require.NoError(t, err)
	require.Len(t, net.Servers, 2)

	f0, ok := net.Flow("f0")
	require.True(t, ok)
	assert.Equal(t, []string{"s0", "s1"}, f0.Path)

	lb := f0.Arrival.(curve.LeakyBucket)
	assert.InDelta(t, 1.0, lb.Rate, 1e-9)
	assert.InDelta(t, 1.0, lb.Burst, 1e-9)
}
