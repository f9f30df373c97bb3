package parking

import (
	"context"
	"time"

	"github.com/ttpr0/go-parking/parser"
	"github.com/ttpr0/go-parking/structs"
	. "github.com/ttpr0/go-parking/util"
	"golang.org/x/exp/slog"
)

type ObjectKind byte

const (
	POINT ObjectKind = 0
	AREA  ObjectKind = 1
)

func (self ObjectKind) String() string {
	switch self {
	case POINT:
		return "node"
	case AREA:
		return "way"
	default:
		panic("unknown object kind")
	}
}

// ExtractedParking stores parking nodes at [0, NodeCount) followed by
// parking ways at [NodeCount, NodeCount+WayCount), both in ascending OSM id
// order.
type ExtractedParking struct {
	Latitude  Array[float32]
	Longitude Array[float32]
	Tags      Array[Tags]
	NodeCount int
	WayCount  int
}

func (self *ExtractedParking) Len() int {
	return self.NodeCount + self.WayCount
}

func (self *ExtractedParking) ObjectIndex(kind ObjectKind, local_id int) int {
	if kind == AREA {
		return self.NodeCount + local_id
	}
	return local_id
}

func (self *ExtractedParking) Kind(index int) ObjectKind {
	if index < self.NodeCount {
		return POINT
	}
	return AREA
}

// LoadParking fills coordinates and tags of the objects in mapping.
//
// The reader has to deliver all nodes before the first way, otherwise way
// centroids are computed from missing coordinates. This is not checked.
// Way centroids are the plain mean of latitudes and longitudes, which is
// off near the poles and the antimeridian.
func LoadParking(ctx context.Context, reader parser.IOSMReader, mapping ParkingIDMapping) (*ExtractedParking, error) {
	parking_node := structs.NewIDMapper(mapping.IsParkingNode)
	parking_way := structs.NewIDMapper(mapping.IsParkingWay)
	parking_modelling_node := structs.NewIDMapper(mapping.IsParkingModellingNode)

	node_count := parking_node.Count()
	way_count := parking_way.Count()
	extracted := &ExtractedParking{
		Latitude:  NewArray[float32](node_count + way_count),
		Longitude: NewArray[float32](node_count + way_count),
		Tags:      NewArray[Tags](node_count + way_count),
		NodeCount: node_count,
		WayCount:  way_count,
	}

	// dropped after the scan
	modelling_lat := NewArray[float32](parking_modelling_node.Count())
	modelling_lon := NewArray[float32](parking_modelling_node.Count())

	slog.Info("Scanning OSM data to extract parking")
	start := time.Now()

	missing := 0
	err := reader.OrderedRead(ctx,
		func(id uint64, lat, lon float64, tags parser.ITagMap) {
			if local := parking_node.ToLocal(id); local.HasValue() {
				extracted.Latitude[local.Value] = float32(lat)
				extracted.Longitude[local.Value] = float32(lon)
				extracted.Tags[local.Value] = _ExtractTags(tags)
			}
			if local := parking_modelling_node.ToLocal(id); local.HasValue() {
				modelling_lat[local.Value] = float32(lat)
				modelling_lon[local.Value] = float32(lon)
			}
		},
		func(id uint64, node_ids []uint64, tags parser.ITagMap) {
			local := parking_way.ToLocal(id)
			if !local.HasValue() {
				return
			}
			index := extracted.ObjectIndex(AREA, local.Value)
			extracted.Tags[index] = _ExtractTags(tags)

			var lat, lon float32
			var count int
			for _, node_id := range node_ids {
				m := parking_modelling_node.ToLocal(node_id)
				if !m.HasValue() {
					missing += 1
					continue
				}
				lat += modelling_lat[m.Value]
				lon += modelling_lon[m.Value]
				count += 1
			}
			extracted.Latitude[index] = lat / float32(count)
			extracted.Longitude[index] = lon / float32(count)
		},
	)
	if err != nil {
		return nil, err
	}
	if missing > 0 {
		slog.Warn("parking ways reference nodes outside the id mapping", "count", missing)
	}

	slog.Info("Finished scan", "took", time.Since(start).String())
	return extracted, nil
}
