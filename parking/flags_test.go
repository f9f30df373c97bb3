package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-parking/parser"
	"github.com/ttpr0/go-parking/structs"
)

func TestProjectRoutingFlags(t *testing.T) {
	is_routing_node := structs.NewBitVector(0)
	for _, id := range []uint64{4, 9, 15, 30, 31} {
		is_routing_node.Set(id)
	}
	is_parking_node := structs.NewBitVector(0)
	for _, id := range []uint64{9, 31, 40} {
		is_parking_node.Set(id)
	}

	flags, skipped := ProjectRoutingFlags(is_routing_node, is_parking_node)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, uint64(5), flags.Size())
	assert.Equal(t, []uint64{1, 4}, ids(flags))
}

func TestProjectAreaRoutingNodes(t *testing.T) {
	reader := testData().
		AddWay(200, []uint64{3, 9, 2}, parser.OSMTags{"highway": "service"})

	result, err := Extract(context.Background(), reader, ExtractOptions{})
	require.NoError(t, err)
	is_routing_node, err := parser.LoadRoutingNodes(context.Background(), reader, &parser.DrivingDecoder{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3, 8, 9}, ids(is_routing_node))

	area_nodes := AreaRoutingNodes(result.Mapping, is_routing_node)
	assert.Equal(t, []uint64{2, 3, 9}, ids(area_nodes))

	flags, skipped := ProjectRoutingFlags(is_routing_node, result.Mapping.IsParkingNode.Or(area_nodes))
	// node 7 is a parking node without a road
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []uint64{0, 1, 3}, ids(flags))
}
