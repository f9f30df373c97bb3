package parser

import (
	"context"
)

//*******************************************
// in-memory reader
//*******************************************

type _MemoryObject struct {
	is_way   bool
	id       uint64
	lat      float64
	lon      float64
	node_ids []uint64
	tags     OSMTags
}

// MemoryReader serves objects from memory in the order they were added.
// Without the ordered assumption OrderedRead replays nodes and ways in two
// separate passes, like the file readers do for unsorted files.
type MemoryReader struct {
	objects        []_MemoryObject
	assume_ordered bool
	err            error
}

func NewMemoryReader() *MemoryReader {
	return &MemoryReader{}
}

func (self *MemoryReader) AddNode(id uint64, lat, lon float64, tags OSMTags) *MemoryReader {
	self.objects = append(self.objects, _MemoryObject{id: id, lat: lat, lon: lon, tags: tags})
	return self
}

func (self *MemoryReader) AddWay(id uint64, node_ids []uint64, tags OSMTags) *MemoryReader {
	self.objects = append(self.objects, _MemoryObject{is_way: true, id: id, node_ids: node_ids, tags: tags})
	return self
}

// FailWith makes every read return err after all objects were delivered.
func (self *MemoryReader) FailWith(err error) *MemoryReader {
	self.err = err
	return self
}

func (self *MemoryReader) SetAssumeOrdered(ordered bool) {
	self.assume_ordered = ordered
}

func (self *MemoryReader) UnorderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	return self._Replay(ctx, on_node, on_way)
}

func (self *MemoryReader) OrderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	if self.assume_ordered {
		return self._Replay(ctx, on_node, on_way)
	}
	if err := self._Replay(ctx, on_node, nil); err != nil {
		return err
	}
	return self._Replay(ctx, nil, on_way)
}

func (self *MemoryReader) _Replay(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	for _, object := range self.objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if object.is_way {
			if on_way != nil {
				on_way(object.id, object.node_ids, object.tags)
			}
		} else {
			if on_node != nil {
				on_node(object.id, object.lat, object.lon, object.tags)
			}
		}
	}
	return self.err
}
