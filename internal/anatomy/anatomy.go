// Package anatomy builds the canonical nervous-system network. The tree and
// its connections are data, kept in nervous_system.yaml and embedded into
// the binary; this package only loads and assembles them.
package anatomy

import (
	_ "embed"
	"fmt"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

//go:embed nervous_system.yaml
var canonical []byte

// Paths of frequently addressed components.
const (
	Root                = "NervousSystem"
	Brain               = Root + "/CentralNervousSystem/Brain"
	PrimaryMotorCortex  = Brain + "/Cerebrum/CerebralCortex/FrontalLobe/PrimaryMotorCortex"
	PrefrontalCortex    = Brain + "/Cerebrum/CerebralCortex/FrontalLobe/PrefrontalCortex"
	PrimaryVisualCortex = Brain + "/Cerebrum/CerebralCortex/OccipitalLobe/PrimaryVisualCortex"
	Cerebellum          = Brain + "/Cerebellum"
	MotorRelayNuclei    = Brain + "/Diencephalon/Thalamus/MotorRelayNuclei"
	Amygdala            = Brain + "/LimbicSystem/Amygdala"
	CervicalRegion      = Root + "/CentralNervousSystem/SpinalCord/CervicalRegion"
)

// Config returns the canonical network description.
func Config() (primitives.NetworkConfig, error) {
	cfg, err := primitives.LoadNetworkConfig(canonical)
	if err != nil {
		return primitives.NetworkConfig{}, fmt.Errorf("canonical anatomy: %w", err)
	}
	return cfg, nil
}

// Build assembles the canonical network.
func Build(opts ...core.Option) (*core.Network, error) {
	cfg, err := Config()
	if err != nil {
		return nil, err
	}
	return core.FromConfig(cfg, opts...)
}

// Load assembles the network described by file, or the canonical network
// when file is empty.
func Load(file string, opts ...core.Option) (*core.Network, error) {
	if file == "" {
		return Build(opts...)
	}
	cfg, err := primitives.ReadNetworkFile(file)
	if err != nil {
		return nil, err
	}
	return core.FromConfig(cfg, opts...)
}
