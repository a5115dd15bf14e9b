package anatomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

func TestCanonicalStructure(t *testing.T) {
	n, err := Build()
	require.NoError(t, err)

	assert.Equal(t, "nervous-system", n.ID())
	assert.Equal(t, 69, n.Len())

	root, err := n.Root()
	require.NoError(t, err)
	assert.Equal(t, Root, root.Path())

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"CentralNervousSystem", "PeripheralNervousSystem"}, names)

	for _, path := range []string{PrimaryMotorCortex, PrefrontalCortex, PrimaryVisualCortex, Cerebellum, MotorRelayNuclei, Amygdala, CervicalRegion} {
		_, err := n.Lookup(path)
		assert.NoError(t, err, path)
	}
}

func TestCanonicalKinds(t *testing.T) {
	n, err := Build()
	require.NoError(t, err)

	m1, err := n.Lookup(PrimaryMotorCortex)
	require.NoError(t, err)
	assert.Equal(t, primitives.KindCortical, m1.Kind())
	assert.Equal(t, primitives.AreaMotor, m1.AreaType())
	assert.Equal(t, 6, m1.Layers())

	v1, err := n.Lookup(PrimaryVisualCortex)
	require.NoError(t, err)
	assert.Equal(t, primitives.AreaSensory, v1.AreaType())

	cb, err := n.Lookup(Cerebellum)
	require.NoError(t, err)
	assert.Equal(t, primitives.KindRegion, cb.Kind())
	assert.Len(t, cb.Children(), 3)

	brain, err := n.Lookup(Brain)
	require.NoError(t, err)
	assert.Equal(t, primitives.KindComponent, brain.Kind())
}

func TestFindReturnsFirstHippocampus(t *testing.T) {
	n, err := Build()
	require.NoError(t, err)

	h, ok := n.Find("Hippocampus")
	require.True(t, ok)
	assert.Equal(t, Brain+"/Cerebrum/CerebralCortex/TemporalLobe/Hippocampus", h.Path())
	assert.Empty(t, h.Children())

	limbic, err := n.Lookup(Brain + "/LimbicSystem/Hippocampus")
	require.NoError(t, err)
	assert.Len(t, limbic.Children(), 3)
}

func TestMotorCortexDemo(t *testing.T) {
	n, err := Build()
	require.NoError(t, err)

	m1, ok := n.Find("PrimaryMotorCortex")
	require.True(t, ok)
	assert.Equal(t, PrimaryMotorCortex, m1.Path())

	out := m1.Process(primitives.NewSignal("motor_command", 0.8, "move_right_hand"))
	require.Len(t, out, 1)
	assert.Equal(t, "motor_control_processed", out[0].Kind)
	assert.InDelta(t, 0.96, out[0].Strength, 1e-9)
	level, _ := m1.ActivityLevel()
	assert.InDelta(t, 0.08, level, 1e-9)
}

func TestCanonicalMotorLoopTerminates(t *testing.T) {
	n, err := Build()
	require.NoError(t, err)
	m1, err := n.Lookup(PrimaryMotorCortex)
	require.NoError(t, err)

	tr := n.SendTrace(m1, primitives.NewSignal("motor_command", 0.8, nil))

	assert.Zero(t, tr.Dropped)
	var reachedSpine, reentered bool
	for _, d := range tr.Deliveries {
		if d.To.Path() == CervicalRegion {
			reachedSpine = true
		}
		if d.Hop > 0 && d.To == m1 {
			reentered = true
		}
	}
	assert.True(t, reachedSpine, "corticospinal tract should deliver to the cervical cord")
	assert.True(t, reentered, "motor loop should re-enter the motor cortex")
	assert.LessOrEqual(t, len(tr.Deliveries), 1+29)
}

func TestLoad(t *testing.T) {
	n, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 69, n.Len())

	file := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(file, []byte("id: tiny\nroot:\n  name: Solo\n"), 0o644))
	n, err = Load(file, core.WithMaxHops(3))
	require.NoError(t, err)
	assert.Equal(t, 1, n.Len())
	assert.Equal(t, 3, n.MaxHops())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCanonicalConfigRoundTrip(t *testing.T) {
	cfg, err := Config()
	require.NoError(t, err)
	n, err := core.FromConfig(cfg)
	require.NoError(t, err)

	exported, err := n.Config()
	require.NoError(t, err)
	assert.Len(t, exported.Connections, len(cfg.Connections))
	assert.Len(t, exported.Flatten(), len(cfg.Flatten()))
}

func BenchmarkSendCanonical(b *testing.B) {
	n, err := Build()
	if err != nil {
		b.Fatal(err)
	}
	m1, err := n.Lookup(PrimaryMotorCortex)
	if err != nil {
		b.Fatal(err)
	}
	sig := primitives.NewSignal("motor_command", 0.8, nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m1.Send(sig)
	}
}

func BenchmarkBuildCanonical(b *testing.B) {
	cfg, err := Config()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := core.FromConfig(cfg); err != nil {
			b.Fatal(err)
		}
	}
}
