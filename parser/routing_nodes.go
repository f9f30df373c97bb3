package parser

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ttpr0/go-parking/structs"
	"golang.org/x/exp/slog"
)

// LoadRoutingNodes marks every node referenced by a way the decoder accepts.
// Only membership is computed, no graph is built.
func LoadRoutingNodes(ctx context.Context, reader IOSMReader, decoder IWayDecoder) (*structs.BitVector, error) {
	slog.Info("Scanning OSM data to determine routing nodes")
	start := time.Now()

	is_routing_node := structs.NewBitVector(0)
	way_count := 0
	err := reader.UnorderedRead(ctx, nil, func(id uint64, node_ids []uint64, tags ITagMap) {
		if !decoder.IsValidHighway(tags) {
			return
		}
		way_count += 1
		for _, node_id := range node_ids {
			is_routing_node.Set(node_id)
		}
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Finished scan", "took", time.Since(start).String())
	slog.Info("Found " + humanize.Comma(int64(way_count)) + " routing ways and " +
		humanize.Comma(int64(is_routing_node.PopulationCount())) + " routing nodes")
	return is_routing_node, nil
}
