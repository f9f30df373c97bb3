package parking

import (
	"context"

	"github.com/ttpr0/go-parking/parser"
)

type ExtractOptions struct {
	// defaults to IsParking
	Predicate Predicate
	// the source is sorted even though its header does not declare it,
	// replaces the mode previously set on the reader
	AssumeOrdered bool
}

type ParkingExtraction struct {
	Mapping ParkingIDMapping
	Parking *ExtractedParking
}

// Extract classifies the parking objects of reader and extracts them in a
// second scan.
func Extract(ctx context.Context, reader parser.IOSMReader, opts ExtractOptions) (*ParkingExtraction, error) {
	reader.SetAssumeOrdered(opts.AssumeOrdered)
	mapping, err := LoadParkingIDMapping(ctx, reader, opts.Predicate)
	if err != nil {
		return nil, err
	}
	parking, err := LoadParking(ctx, reader, mapping)
	if err != nil {
		return nil, err
	}
	return &ParkingExtraction{
		Mapping: mapping,
		Parking: parking,
	}, nil
}
