package parser

import (
	"context"
	"os"
	"runtime"

	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"
)

const SORT_TYPE_THEN_ID = "Sort.Type_then_ID"

//*******************************************
// pbf reader
//*******************************************

type PBFReader struct {
	file           string
	procs          int
	assume_ordered bool
}

func NewPBFReader(file string) *PBFReader {
	return &PBFReader{
		file:  file,
		procs: runtime.GOMAXPROCS(-1),
	}
}

func (self *PBFReader) SetAssumeOrdered(ordered bool) {
	self.assume_ordered = ordered
}

func (self *PBFReader) UnorderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	return self._Scan(ctx, on_node, on_way)
}

func (self *PBFReader) OrderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	ordered := self.assume_ordered
	if !ordered {
		sorted, err := self.IsSorted(ctx)
		if err != nil {
			return err
		}
		ordered = sorted
	}
	if ordered {
		return self._Scan(ctx, on_node, on_way)
	}
	slog.Debug("pbf header does not declare " + SORT_TYPE_THEN_ID + ", reading nodes and ways separately")
	if err := self._Scan(ctx, on_node, nil); err != nil {
		return err
	}
	return self._Scan(ctx, nil, on_way)
}

// IsSorted reports whether the file header declares Sort.Type_then_ID.
func (self *PBFReader) IsSorted(ctx context.Context) (bool, error) {
	file, err := os.Open(self.file)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, 1)
	defer scanner.Close()
	header, err := scanner.Header()
	if err != nil {
		return false, err
	}
	for _, feature := range header.OptionalFeatures {
		if feature == SORT_TYPE_THEN_ID {
			return true, nil
		}
	}
	for _, feature := range header.RequiredFeatures {
		if feature == SORT_TYPE_THEN_ID {
			return true, nil
		}
	}
	return false, nil
}

func (self *PBFReader) _Scan(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	file, err := os.Open(self.file)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, self.procs)
	defer scanner.Close()
	scanner.SkipNodes = on_node == nil
	scanner.SkipWays = on_way == nil
	scanner.SkipRelations = true
	return _Dispatch(scanner, on_node, on_way)
}
