package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/paulmach/osm"
	. "github.com/ttpr0/go-parking/util"
)

//*******************************************
// tags
//*******************************************

// ITagMap looks up the value of an OSM tag.
type ITagMap interface {
	Get(key string) (string, bool)
}

// OSMTags is a map backed ITagMap.
type OSMTags Dict[string, string]

func (self OSMTags) Get(key string) (string, bool) {
	value, ok := self[key]
	return value, ok
}

// TagList wraps the tags of a decoded osm object without copying them.
type TagList osm.Tags

func (self TagList) Get(key string) (string, bool) {
	for _, tag := range self {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

//*******************************************
// reader
//*******************************************

type NodeCallback func(id uint64, lat, lon float64, tags ITagMap)

type WayCallback func(id uint64, node_ids []uint64, tags ITagMap)

// IOSMReader streams nodes and ways of an OSM dataset. A nil callback skips
// the corresponding object type.
type IOSMReader interface {
	// UnorderedRead delivers objects in file order.
	UnorderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error
	// OrderedRead delivers all nodes before the first way.
	OrderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error
	// SetAssumeOrdered marks the source as sorted by type even if its header
	// does not say so. OrderedRead then reads it in a single pass.
	SetAssumeOrdered(ordered bool)
}

// OpenReader picks the reader by file extension.
func OpenReader(file string) IOSMReader {
	name := strings.ToLower(filepath.Base(file))
	if strings.HasSuffix(name, ".osm") || strings.HasSuffix(name, ".xml") {
		return NewXMLReader(file)
	}
	return NewPBFReader(file)
}

//*******************************************
// object dispatch
//*******************************************

type _IObjectScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

func _Dispatch(scanner _IObjectScanner, on_node NodeCallback, on_way WayCallback) error {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			if on_node == nil || object.ID < 0 {
				continue
			}
			on_node(uint64(object.ID), object.Lat, object.Lon, TagList(object.Tags))
		case *osm.Way:
			if on_way == nil || object.ID < 0 {
				continue
			}
			node_ids := make([]uint64, 0, len(object.Nodes))
			for _, node := range object.Nodes {
				if node.ID < 0 {
					continue
				}
				node_ids = append(node_ids, uint64(node.ID))
			}
			on_way(uint64(object.ID), node_ids, TagList(object.Tags))
		default:
			continue
		}
	}
	return scanner.Err()
}
