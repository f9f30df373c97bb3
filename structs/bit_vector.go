package structs

import (
	"encoding/binary"
	"io"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"
)

//*******************************************
// bit vector
//*******************************************

// BitVector is a set of OSM ids. It grows on Set, so the extent follows the
// largest id written rather than the id space.
type BitVector struct {
	bits *bitset.BitSet
}

func NewBitVector(size uint64) *BitVector {
	return &BitVector{
		bits: bitset.New(uint(size)),
	}
}

func (self *BitVector) Set(id uint64) {
	self.bits.Set(uint(id))
}

func (self *BitVector) IsSet(id uint64) bool {
	return self.bits.Test(uint(id))
}

// Size is the extent of the vector, one past the largest id it can hold.
func (self *BitVector) Size() uint64 {
	return uint64(self.bits.Len())
}

func (self *BitVector) PopulationCount() uint64 {
	return uint64(self.bits.Count())
}

// Or returns the union with other.
func (self *BitVector) Or(other *BitVector) *BitVector {
	return &BitVector{bits: self.bits.Union(other.bits)}
}

// And returns the intersection with other.
func (self *BitVector) And(other *BitVector) *BitVector {
	return &BitVector{bits: self.bits.Intersection(other.bits)}
}

// ForEach calls fn for every set id in ascending order.
func (self *BitVector) ForEach(fn func(id uint64)) {
	for i, ok := self.bits.NextSet(0); ok; i, ok = self.bits.NextSet(i + 1) {
		fn(uint64(i))
	}
}

func (self *BitVector) _Words() []uint64 {
	return self.bits.Words()
}

//*******************************************
// bit vector io
//*******************************************

// WriteBitVector writes the bit count followed by the little-endian words.
func WriteBitVector(writer io.Writer, vec *BitVector) error {
	if err := binary.Write(writer, binary.LittleEndian, vec.Size()); err != nil {
		return err
	}
	words := vec._Words()
	needed := (vec.Size() + 63) / 64
	if uint64(len(words)) > needed {
		words = words[:needed]
	}
	return binary.Write(writer, binary.LittleEndian, words)
}

func ReadBitVector(reader io.Reader) (*BitVector, error) {
	var size uint64
	if err := binary.Read(reader, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	words := make([]uint64, (size+63)/64)
	if err := binary.Read(reader, binary.LittleEndian, words); err != nil {
		return nil, err
	}
	return &BitVector{bits: bitset.FromWithLength(uint(size), words)}, nil
}

// WriteRoaring stores the set ids in the portable roaring64 format, which
// stays small for sparse OSM id ranges.
func WriteRoaring(writer io.Writer, vec *BitVector) error {
	bitmap := roaring64.New()
	vec.ForEach(func(id uint64) {
		bitmap.Add(id)
	})
	bitmap.RunOptimize()
	_, err := bitmap.WriteTo(writer)
	return err
}

func ReadRoaring(reader io.Reader) (*BitVector, error) {
	bitmap := roaring64.New()
	if _, err := bitmap.ReadFrom(reader); err != nil {
		return nil, err
	}
	vec := NewBitVector(0)
	it := bitmap.Iterator()
	for it.HasNext() {
		vec.Set(it.Next())
	}
	return vec, nil
}
