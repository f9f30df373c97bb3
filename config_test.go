package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-parking/parking"
	"github.com/ttpr0/go-parking/parser"
	"golang.org/x/exp/slog"
)

func TestReadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	data := `
source:
  osm: ./data/saarland.pbf
  assume-ordered: true
extraction:
  predicate: charging
  vehicle: truck
output:
  directory: ./export
  csv: parking.csv.zst
`
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))

	config, err := ReadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "./data/saarland.pbf", config.Source.OSM)
	assert.True(t, config.Source.AssumeOrdered)
	assert.Equal(t, parking.CHARGING, config.Extraction.Predicate)
	assert.Equal(t, HGV, config.Extraction.Vehicle)
	assert.Equal(t, "parking.csv.zst", config.Output.CSV)
	// untouched keys keep their defaults
	assert.Equal(t, "parking_tags", config.Output.Tags)
	assert.True(t, config.Extraction.IncludeAreaNodes)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestReadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("extraction:\n  predicate: bicycle\n"), 0o644))
	_, err = ReadConfig(file)
	assert.Error(t, err)
}

func TestReadConfigLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(NewLogHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("logging:\n  level: error\n"), 0o644))
	config, err := ReadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "error", config.Logging.Level)
	assert.Empty(t, buf.String())
}

func TestGetDecoder(t *testing.T) {
	assert.IsType(t, &parser.DrivingDecoder{}, GetDecoder(CAR))
	assert.IsType(t, &parser.TruckDecoder{}, GetDecoder(HGV))
}

func TestInitLogging(t *testing.T) {
	assert.NoError(t, InitLogging("debug"))
	assert.Error(t, InitLogging("loud"))
	require.NoError(t, InitLogging("info"))
}
