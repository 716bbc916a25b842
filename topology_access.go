package tng

import "github.com/tngformat/tng/topology"

// TopologyGet returns the Trajectory's topology for in-place mutation
// (molecule/chain/residue/atom/bond registration), matching spec.md §3
// "Trajectory ... owns ... topology".
func (t *Trajectory) TopologyGet() *topology.Topology { return t.topology }

// TopologySet replaces the Trajectory's topology outright; valid before the
// first writeHeadersIfNeeded call (i.e. before FrameSetNew or an explicit
// header flush), since MOLECULES is written once at that point.
func (t *Trajectory) TopologySet(topo *topology.Topology) {
	t.topology = topo
}
