// Tests for DefaultVisualizer DOT export and hierarchy rendering.
package production

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

func TestDefaultVisualizer_ExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	cfg := sampleConfig(t)
	dot := v.ExportDOT(cfg, map[string]float64{
		"NS/Brain/M1":         0.08,
		"NS/Brain/Cerebellum": 0.7,
	})

	assert.True(t, strings.HasPrefix(dot, "digraph Network {"))
	assert.Contains(t, dot, `subgraph "cluster_NS" {`)
	assert.Contains(t, dot, `subgraph "cluster_NS_Brain" {`)
	assert.Contains(t, dot, `"NS/Brain/M1" -> "NS/Brain/Cerebellum";`)
	assert.Contains(t, dot, "shape=box3d")
	assert.Contains(t, dot, "shape=ellipse")
	assert.Contains(t, dot, "fillcolor=lightgreen")
	assert.Contains(t, dot, "fillcolor=orange")
	assert.NotContains(t, dot, "fillcolor=red")
}

func TestDefaultVisualizer_ThroughNetwork(t *testing.T) {
	n := sampleNetwork(t, core.WithVisualizer(&DefaultVisualizer{}))
	m1, err := n.Lookup("NS/Brain/M1")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		m1.Send(primitives.NewSignal("motor_command", 1, nil))
	}

	dot, err := n.Visualize()
	require.NoError(t, err)
	assert.Contains(t, dot, "fillcolor=red")
}

func TestDefaultVisualizer_EmptyConfig(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(primitives.NetworkConfig{ID: "empty"}, nil)
	assert.Equal(t, "digraph Network {", strings.SplitN(dot, "\n", 2)[0])
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestDefaultVisualizer_ExportJSON(t *testing.T) {
	v := &DefaultVisualizer{}
	data, err := v.ExportJSON(sampleConfig(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "sample"`)
	assert.Contains(t, string(data), `"areaType": "motor"`)
}
