package main

import (
	"errors"
	"os"

	"github.com/rotisserie/eris"
	"github.com/ttpr0/go-parking/parking"
	"github.com/ttpr0/go-parking/parser"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// ReadConfig overlays file on DefaultConfig. It does not log, logging is set
// up from the result.
func ReadConfig(file string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, eris.Wrapf(err, "read config %s", file)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, eris.Wrapf(err, "parse config %s", file)
	}
	return config, nil
}

func DefaultConfig() Config {
	config := Config{}
	config.Extraction.Vehicle = CAR
	config.Extraction.IncludeAreaNodes = true
	config.Output = OutputOptions{
		Directory:     ".",
		Tags:          "parking_tags",
		CSV:           "parking_info.csv",
		Latitude:      "parking_latitude",
		Longitude:     "parking_longitude",
		RoutingFlags:  "routing_parking_flags",
		IsRoutingNode: "is_routing_node",
		ParkingWays:   "osm_parking_way",
	}
	config.Logging.Level = "info"
	return config
}

type Config struct {
	Source     SourceOptions     `yaml:"source"`
	Extraction ExtractionOptions `yaml:"extraction"`
	Output     OutputOptions     `yaml:"output"`
	Logging    struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

type SourceOptions struct {
	OSM string `yaml:"osm"`
	// trust the file to list all nodes before the ways
	AssumeOrdered bool `yaml:"assume-ordered"`
}

type ExtractionOptions struct {
	Predicate        parking.PredicateType `yaml:"predicate"`
	RoutingFlags     bool                  `yaml:"routing-flags"`
	Vehicle          VehicleType           `yaml:"vehicle"`
	IncludeAreaNodes bool                  `yaml:"include-area-nodes"`
}

// OutputOptions holds file names relative to Directory. Empty names are not
// written. Names ending in .zst or .lz4 are compressed.
type OutputOptions struct {
	Directory     string `yaml:"directory"`
	Tags          string `yaml:"tags"`
	CSV           string `yaml:"csv"`
	GeoJSON       string `yaml:"geojson"`
	Latitude      string `yaml:"latitude"`
	Longitude     string `yaml:"longitude"`
	RoutingFlags  string `yaml:"routing-flags"`
	IsRoutingNode string `yaml:"is-routing-node"`
	ParkingWays   string `yaml:"parking-ways"`
}

//**********************************************************
// enums
//**********************************************************

type VehicleType byte

const (
	CAR VehicleType = 0
	HGV VehicleType = 1
)

func (self VehicleType) String() string {
	switch self {
	case CAR:
		return "car"
	case HGV:
		return "hgv"
	default:
		panic("unknown vehicle type")
	}
}
func (self VehicleType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *VehicleType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := VehicleTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func VehicleTypeFromString(s string) (VehicleType, error) {
	switch s {
	case "car":
		return CAR, nil
	case "hgv", "truck":
		return HGV, nil
	default:
		return CAR, errors.New("unknown vehicle type")
	}
}

func GetDecoder(typ VehicleType) parser.IWayDecoder {
	var decoder parser.IWayDecoder
	switch typ {
	case CAR:
		decoder = &parser.DrivingDecoder{}
	case HGV:
		decoder = &parser.TruckDecoder{}
	}
	return decoder
}
