// Package benchmarks provides shared network generators for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

// GenChainConfig creates n regions under one root, each connected to the
// next. With ring set the last connects back to the first.
func GenChainConfig(n int, ring bool) primitives.NetworkConfig {
	if n < 1 {
		n = 1
	}
	b := primitives.NewNetworkBuilder(fmt.Sprintf("chain_%d", n), "root")
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		paths[i] = b.Root().Region(fmt.Sprintf("r%d", i), "relay").Path()
	}
	for i := 0; i+1 < n; i++ {
		b.Connect(paths[i], paths[i+1])
	}
	if ring {
		b.Connect(paths[n-1], paths[0])
	}
	return mustBuild(b)
}

// GenDeepConfig creates a single path of nested regions depth levels deep,
// with a cortical motor leaf at the bottom connected back to the root.
func GenDeepConfig(depth int) primitives.NetworkConfig {
	if depth < 1 {
		depth = 1
	}
	b := primitives.NewNetworkBuilder(fmt.Sprintf("deep_%d", depth), "root")
	cb := b.Root()
	for i := 0; i < depth; i++ {
		cb = cb.Region(fmt.Sprintf("r%d", i), "relay")
	}
	cb.Cortical("leaf", "drive", primitives.AreaMotor).Connect("root")
	return mustBuild(b)
}

// GenMeshConfig creates n cortical areas where every area connects to
// every other, giving n*(n-1) edges.
func GenMeshConfig(n int) primitives.NetworkConfig {
	if n < 1 {
		n = 1
	}
	areas := []primitives.AreaType{primitives.AreaMotor, primitives.AreaSensory, primitives.AreaAssociation}
	b := primitives.NewNetworkBuilder(fmt.Sprintf("mesh_%d", n), "root")
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		paths[i] = b.Root().Cortical(fmt.Sprintf("a%d", i), "assoc", areas[i%len(areas)]).Path()
	}
	for i := range paths {
		for j := range paths {
			if i != j {
				b.Connect(paths[i], paths[j])
			}
		}
	}
	return mustBuild(b)
}

// GenSnapshotYAML generates YAML bytes for a snapshot of a chain of
// numRegions after one send through it.
func GenSnapshotYAML(numRegions int) []byte {
	n, err := core.FromConfig(GenChainConfig(numRegions, false))
	if err != nil {
		panic(err)
	}
	first, err := n.Lookup("root/r0")
	if err != nil {
		panic(err)
	}
	first.Send(primitives.NewSignal("tick", 1, nil))
	snap, err := n.Snapshot()
	if err != nil {
		panic(err)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		panic(err)
	}
	return data
}

func mustBuild(b *primitives.NetworkBuilder) primitives.NetworkConfig {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}
