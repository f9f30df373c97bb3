package parking

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ttpr0/go-parking/parser"
	"github.com/ttpr0/go-parking/structs"
	"golang.org/x/exp/slog"
)

// ParkingIDMapping holds the OSM ids classified by a single scan.
type ParkingIDMapping struct {
	IsParkingNode *structs.BitVector
	IsParkingWay  *structs.BitVector
	// nodes referenced by parking ways, needed to compute their centroids
	IsParkingModellingNode *structs.BitVector
}

// LoadParkingIDMapping classifies nodes and ways with is_parking. A nil
// predicate falls back to IsParking. Way classification only depends on the
// way itself, so the scan does not need to be ordered.
func LoadParkingIDMapping(ctx context.Context, reader parser.IOSMReader, is_parking Predicate) (ParkingIDMapping, error) {
	slog.Info("Scanning OSM data to determine parking object IDs")
	start := time.Now()

	if is_parking == nil {
		is_parking = IsParking
	}

	mapping := ParkingIDMapping{
		IsParkingNode:          structs.NewBitVector(0),
		IsParkingWay:           structs.NewBitVector(0),
		IsParkingModellingNode: structs.NewBitVector(0),
	}

	err := reader.UnorderedRead(ctx,
		func(id uint64, lat, lon float64, tags parser.ITagMap) {
			if is_parking(tags) {
				mapping.IsParkingNode.Set(id)
			}
		},
		func(id uint64, node_ids []uint64, tags parser.ITagMap) {
			if !is_parking(tags) {
				return
			}
			mapping.IsParkingWay.Set(id)
			for _, node_id := range node_ids {
				mapping.IsParkingModellingNode.Set(node_id)
			}
		},
	)
	if err != nil {
		return ParkingIDMapping{}, err
	}

	slog.Info("Finished scan", "took", time.Since(start).String())
	_LogRange("parking nodes", mapping.IsParkingNode)
	_LogRange("parking ways", mapping.IsParkingWay)
	_LogRange("parking modelling nodes", mapping.IsParkingModellingNode)
	return mapping, nil
}

func _LogRange(name string, vec *structs.BitVector) {
	slog.Info("OSM ID range goes up to " + humanize.Comma(int64(vec.Size())) + " for " + name)
	slog.Info("Found " + humanize.Comma(int64(vec.PopulationCount())) + " " + name)
}
