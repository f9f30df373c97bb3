package parking

import (
	"github.com/dustin/go-humanize"
	"github.com/ttpr0/go-parking/structs"
	"golang.org/x/exp/slog"
)

// ProjectRoutingFlags maps the parking nodes onto the local node ids of a
// routing graph whose nodes are given by is_routing_node. The returned flags
// are sized to the routing node count. Parking nodes that are no routing
// nodes are skipped and counted.
func ProjectRoutingFlags(is_routing_node, is_parking_node *structs.BitVector) (*structs.BitVector, int) {
	slog.Info("Constructing parking flags")

	routing_node := structs.NewIDMapper(is_routing_node)
	flags := structs.NewBitVector(uint64(routing_node.Count()))
	skipped := 0
	is_parking_node.ForEach(func(id uint64) {
		local := routing_node.ToLocal(id)
		if !local.HasValue() {
			skipped += 1
			return
		}
		flags.Set(uint64(local.Value))
	})

	slog.Info("Flagged " + humanize.Comma(int64(flags.PopulationCount())) + " of " +
		humanize.Comma(int64(routing_node.Count())) + " routing nodes")
	if skipped > 0 {
		slog.Warn("parking nodes outside the routing graph", "count", skipped)
	}
	return flags, skipped
}

// AreaRoutingNodes returns the boundary nodes of parking ways that are also
// routing nodes.
func AreaRoutingNodes(mapping ParkingIDMapping, is_routing_node *structs.BitVector) *structs.BitVector {
	return mapping.IsParkingModellingNode.And(is_routing_node)
}
