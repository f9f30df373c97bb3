package parser

import (
	"context"
	"os"

	"github.com/paulmach/osm/osmxml"
)

//*******************************************
// osm xml reader
//*******************************************

// XMLReader reads .osm files. Their header carries no sort information, so
// OrderedRead scans twice unless the file is asserted to be ordered.
type XMLReader struct {
	file           string
	assume_ordered bool
}

func NewXMLReader(file string) *XMLReader {
	return &XMLReader{file: file}
}

func (self *XMLReader) SetAssumeOrdered(ordered bool) {
	self.assume_ordered = ordered
}

func (self *XMLReader) UnorderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	return self._Scan(ctx, on_node, on_way)
}

func (self *XMLReader) OrderedRead(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	if self.assume_ordered {
		return self._Scan(ctx, on_node, on_way)
	}
	if err := self._Scan(ctx, on_node, nil); err != nil {
		return err
	}
	return self._Scan(ctx, nil, on_way)
}

func (self *XMLReader) _Scan(ctx context.Context, on_node NodeCallback, on_way WayCallback) error {
	file, err := os.Open(self.file)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmxml.New(ctx, file)
	defer scanner.Close()
	return _Dispatch(scanner, on_node, on_way)
}
