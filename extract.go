package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/ttpr0/go-parking/parking"
	"github.com/ttpr0/go-parking/parser"
	"github.com/ttpr0/go-parking/structs"
	. "github.com/ttpr0/go-parking/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// RunExtraction extracts the parking objects of the configured source and
// writes every configured output.
func RunExtraction(ctx context.Context, config Config) error {
	start := time.Now()

	reader := parser.OpenReader(config.Source.OSM)
	result, err := parking.Extract(ctx, reader, parking.ExtractOptions{
		Predicate:     config.Extraction.Predicate.Predicate(),
		AssumeOrdered: config.Source.AssumeOrdered,
	})
	if err != nil {
		return err
	}

	var is_routing_node, flags *structs.BitVector
	if config.Extraction.RoutingFlags {
		is_routing_node, err = parser.LoadRoutingNodes(ctx, reader, GetDecoder(config.Extraction.Vehicle))
		if err != nil {
			return err
		}
		is_parking_node := result.Mapping.IsParkingNode
		if config.Extraction.IncludeAreaNodes {
			is_parking_node = is_parking_node.Or(parking.AreaRoutingNodes(result.Mapping, is_routing_node))
		}
		flags, _ = parking.ProjectRoutingFlags(is_routing_node, is_parking_node)
	}

	if err := SaveOutputs(config.Output, result, is_routing_node, flags); err != nil {
		return err
	}

	slog.Info("Finished extraction", "took", time.Since(start).String())
	return nil
}

// SaveOutputs writes the configured files concurrently. A failing file does
// not stop the others; the first error is returned.
func SaveOutputs(options OutputOptions, result *parking.ParkingExtraction, is_routing_node, flags *structs.BitVector) error {
	slog.Info("Start saving parking information")
	start := time.Now()

	if err := os.MkdirAll(options.Directory, 0o755); err != nil {
		return eris.Wrapf(err, "create %s", options.Directory)
	}
	path := func(name string) string {
		return filepath.Join(options.Directory, name)
	}

	g := errgroup.Group{}
	save := func(name string, write func(file string) error) {
		if name == "" {
			return
		}
		g.Go(func() error {
			err := write(path(name))
			if err != nil {
				slog.Error("failed to save " + name + ": " + err.Error())
			}
			return err
		})
	}

	p := result.Parking
	save(options.Tags, func(file string) error {
		return parking.SaveTags(file, p.Tags)
	})
	save(options.CSV, func(file string) error {
		return parking.SaveTagsCSV(file, p)
	})
	save(options.GeoJSON, func(file string) error {
		return parking.SaveGeoJSON(file, p)
	})
	save(options.Latitude, func(file string) error {
		return WriteVectorToFile(p.Latitude, file)
	})
	save(options.Longitude, func(file string) error {
		return WriteVectorToFile(p.Longitude, file)
	})
	save(options.ParkingWays, func(file string) error {
		return _SaveBits(file, result.Mapping.IsParkingWay, structs.WriteRoaring)
	})
	if flags != nil {
		save(options.RoutingFlags, func(file string) error {
			return _SaveBits(file, flags, structs.WriteBitVector)
		})
		save(options.IsRoutingNode, func(file string) error {
			return _SaveBits(file, is_routing_node, structs.WriteRoaring)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Finished saving", "took", time.Since(start).String())
	return nil
}

func _SaveBits(file string, vec *structs.BitVector, write func(io.Writer, *structs.BitVector) error) error {
	out, err := CreateOutput(file)
	if err != nil {
		return err
	}
	if err := write(out, vec); err != nil {
		out.Close()
		return eris.Wrapf(err, "write %s", file)
	}
	return out.Close()
}
