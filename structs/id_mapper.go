package structs

import (
	"math/bits"

	. "github.com/ttpr0/go-parking/util"
)

//*******************************************
// id mapper
//*******************************************

// IDMapper compresses the set ids of a BitVector into the dense range
// [0, Count()), assigned in ascending id order. rank[w] is the number of set
// ids below word w.
type IDMapper struct {
	words     []uint64
	rank      Array[uint64]
	local_ids Array[uint64]
}

// NewIDMapper snapshots vec. Later changes to vec are not reflected.
func NewIDMapper(vec *BitVector) *IDMapper {
	words := append([]uint64(nil), vec._Words()...)
	rank := NewArray[uint64](len(words))
	local_ids := NewArray[uint64](int(vec.PopulationCount()))

	count := uint64(0)
	for w, word := range words {
		rank[w] = count
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			local_ids[count] = uint64(w)*64 + uint64(bit)
			count += 1
			word &= word - 1
		}
	}

	return &IDMapper{
		words:     words,
		rank:      rank,
		local_ids: local_ids[:count],
	}
}

func (self *IDMapper) Count() int {
	return self.local_ids.Length()
}

func (self *IDMapper) IsGlobal(id uint64) bool {
	w := id / 64
	if w >= uint64(len(self.words)) {
		return false
	}
	return self.words[w]&(1<<(id%64)) != 0
}

func (self *IDMapper) ToLocal(id uint64) Optional[int] {
	if !self.IsGlobal(id) {
		return None[int]()
	}
	w := id / 64
	below := self.words[w] & ((1 << (id % 64)) - 1)
	return Some(int(self.rank[w]) + bits.OnesCount64(below))
}

func (self *IDMapper) ToGlobal(local_id int) uint64 {
	return self.local_ids[local_id]
}
