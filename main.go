package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/ttpr0/go-parking/parking"
	. "github.com/ttpr0/go-parking/util"
	"golang.org/x/exp/slog"
)

var (
	config_file        string
	log_level          string
	predicate          string
	vehicle            string
	assume_ordered     bool
	routing_flags      bool
	include_area_nodes bool
	print_rows         bool
)

var root_cmd = &cobra.Command{
	Use:          "go-parking",
	Short:        "Extract parking facilities from OpenStreetMap data",
	SilenceUsage: true,
}

var extract_cmd = &cobra.Command{
	Use:   "extract [osm_file] [export_directory]",
	Short: "Extract parking nodes and areas with their tags",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := LoadConfig(cmd, args)
		if err != nil {
			return err
		}
		if err := InitLogging(config.Logging.Level); err != nil {
			return err
		}
		if config_file != "" {
			slog.Info("Using config file " + config_file)
		}
		if config.Source.OSM == "" {
			return eris.New("no osm source given")
		}
		return RunExtraction(cmd.Context(), config)
	},
}

var inspect_cmd = &cobra.Command{
	Use:   "inspect <tags_file>",
	Short: "Summarize a binary parking tag file or a parking csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := _LoadTagTable(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		keys := parking.TagKeys()
		counts := make(map[string]int, len(keys))
		for i, row := range tags {
			values := []string{}
			for t, value := range row {
				if value == "" {
					continue
				}
				counts[keys[t]] += 1
				values = append(values, keys[t]+"="+value)
			}
			if print_rows {
				fmt.Fprintf(out, "%d %s\n", i, strings.Join(values, " "))
			}
		}
		fmt.Fprintf(out, "objects: %d\n", len(tags))
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s: %d\n", name, counts[name])
		}
		return nil
	},
}

// _LoadTagTable reads the tags of a binary dump, or of the csv table if the
// name ends in .csv (before a compression suffix).
func _LoadTagTable(file string) (Array[parking.Tags], error) {
	name := strings.TrimSuffix(strings.TrimSuffix(file, ".zst"), ".lz4")
	if !strings.HasSuffix(name, ".csv") {
		return parking.LoadTags(file)
	}
	table, err := parking.LoadTagsCSV(file)
	if err != nil {
		return nil, err
	}
	return table.Tags, nil
}

func init() {
	flags := extract_cmd.Flags()
	flags.StringVarP(&config_file, "config", "c", "", "yaml config file")
	flags.StringVar(&log_level, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&predicate, "predicate", "", "parking, hgv, charging or hgv-charging")
	flags.StringVar(&vehicle, "vehicle", "", "routing graph vehicle for the parking flags, car or hgv")
	flags.BoolVar(&assume_ordered, "assume-ordered", false, "file is ordered even though its header says it is unordered")
	flags.BoolVar(&routing_flags, "routing-flags", false, "project parking nodes onto the routing nodes")
	flags.BoolVar(&include_area_nodes, "include-area-nodes", true, "also flag routing nodes on parking area boundaries")

	inspect_cmd.Flags().BoolVar(&print_rows, "rows", false, "print every object")

	root_cmd.AddCommand(extract_cmd, inspect_cmd)
}

// LoadConfig reads the config file if given and applies positional
// arguments and changed flags on top.
func LoadConfig(cmd *cobra.Command, args []string) (Config, error) {
	config := DefaultConfig()
	if config_file != "" {
		c, err := ReadConfig(config_file)
		if err != nil {
			return config, err
		}
		config = c
	}
	if len(args) > 0 {
		config.Source.OSM = args[0]
	}
	if len(args) > 1 {
		config.Output.Directory = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.Logging.Level = log_level
	}
	if flags.Changed("predicate") {
		typ, err := parking.PredicateTypeFromString(predicate)
		if err != nil {
			return config, eris.Wrapf(err, "--predicate %q", predicate)
		}
		config.Extraction.Predicate = typ
	}
	if flags.Changed("vehicle") {
		typ, err := VehicleTypeFromString(vehicle)
		if err != nil {
			return config, eris.Wrapf(err, "--vehicle %q", vehicle)
		}
		config.Extraction.Vehicle = typ
	}
	if flags.Changed("assume-ordered") {
		config.Source.AssumeOrdered = assume_ordered
	}
	if flags.Changed("routing-flags") {
		config.Extraction.RoutingFlags = routing_flags
	}
	if flags.Changed("include-area-nodes") {
		config.Extraction.IncludeAreaNodes = include_area_nodes
	}
	return config, nil
}

func main() {
	if err := root_cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
