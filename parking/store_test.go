package parking

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-parking/parser"
	. "github.com/ttpr0/go-parking/util"
)

func extractTestData(t *testing.T) *ExtractedParking {
	result, err := Extract(context.Background(), testData(), ExtractOptions{})
	require.NoError(t, err)
	return result.Parking
}

func TestWriteTags(t *testing.T) {
	parking := extractTestData(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTags(&buf, parking.Tags))

	data := buf.Bytes()
	assert.Equal(t, parking.Len()*TAG_COUNT, bytes.Count(data, []byte{0}))
	fields := strings.Split(strings.TrimSuffix(string(data), "\x00"), "\x00")
	require.Len(t, fields, parking.Len()*TAG_COUNT)
	assert.Equal(t, "P2", fields[int(NAME)])
	assert.Equal(t, "City", fields[int(OPERATOR_NAME)])
	assert.Equal(t, "surface", fields[TAG_COUNT+int(PARKING)])
	assert.Equal(t, "20", fields[2*TAG_COUNT+int(CAPACITY)])
	assert.Equal(t, "yes", fields[3*TAG_COUNT+int(HGV)])
}

func TestReadTags(t *testing.T) {
	parking := extractTestData(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTags(&buf, parking.Tags))
	tags, err := ReadTags(&buf)
	require.NoError(t, err)
	assert.Equal(t, parking.Tags, tags)

	_, err = ReadTags(strings.NewReader("a\x00b\x00"))
	assert.Error(t, err)
	_, err = ReadTags(strings.NewReader(strings.Repeat("\x00", TAG_COUNT) + "dangling"))
	assert.Error(t, err)

	empty, err := ReadTags(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWriteTagsCSV(t *testing.T) {
	reader := parser.NewMemoryReader().
		AddNode(12, 52.515625, 13.375, parser.OSMTags{"amenity": "parking"})
	result, err := Extract(context.Background(), reader, ExtractOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTagsCSV(&buf, result.Parking))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "latitude,longitude,name,ref,access,parking,park_ride,fee,supervised,capacity,"+
		"capacity_disabled,capacity_parent,capacity_charging,surface,maxstay,opening_hours,operator,website,hgv,bus", lines[0])
	assert.Equal(t, "52.515625,13.375"+strings.Repeat(",", TAG_COUNT), lines[1])
	assert.Equal(t, "", lines[2])
}

type parkingRow struct {
	Latitude  float32 `csv:"latitude"`
	Longitude float32 `csv:"longitude"`
	Name      string  `csv:"name"`
	Capacity  int     `csv:"capacity"`
	Operator  string  `csv:"operator"`
}

func TestWriteTagsCSVReadable(t *testing.T) {
	parking := extractTestData(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTagsCSV(&buf, parking))

	rows := NewList[parkingRow](4)
	for row, err := range ReadCSV[parkingRow](&buf, ',') {
		require.NoError(t, err)
		rows.Add(row)
	}
	require.Equal(t, 4, rows.Length())
	assert.Equal(t, parkingRow{50.5, 8.25, "P2", 0, "City"}, rows[0])
	assert.Equal(t, parkingRow{2, 2, "", 20, ""}, rows[2])
}

func TestReadTagsCSV(t *testing.T) {
	parking := extractTestData(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTagsCSV(&buf, parking))
	read, err := ReadTagsCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, parking.Len(), read.Len())
	assert.Equal(t, parking.Latitude, read.Latitude)
	assert.Equal(t, parking.Longitude, read.Longitude)
	assert.Equal(t, parking.Tags, read.Tags)
}

func TestReadTagsCSVSkipsSplitRows(t *testing.T) {
	reader := parser.NewMemoryReader().
		AddNode(1, 1, 1, parser.OSMTags{"amenity": "parking", "name": "Lot A, North"}).
		AddNode(2, 2, 2, parser.OSMTags{"amenity": "parking", "name": "Lot B"})
	result, err := Extract(context.Background(), reader, ExtractOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTagsCSV(&buf, result.Parking))
	read, err := ReadTagsCSV(&buf)
	require.NoError(t, err)

	require.Equal(t, 1, read.Len())
	assert.Equal(t, "Lot B", read.Tags[0].Get(NAME))
}

func TestLoadTagsCSVCompressed(t *testing.T) {
	parking := extractTestData(t)
	file := filepath.Join(t.TempDir(), "parking_info.csv.zst")
	require.NoError(t, SaveTagsCSV(file, parking))

	read, err := LoadTagsCSV(file)
	require.NoError(t, err)
	assert.Equal(t, parking.Tags, read.Tags)
}

func TestWriteGeoJSON(t *testing.T) {
	parking := extractTestData(t)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, parking))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 4)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{8.25, 50.5}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, map[string]any{"index": 0.0, "osm_type": "node", "name": "P2", "operator": "City"}, fc.Features[0].Properties)
	assert.Equal(t, "way", fc.Features[2].Properties["osm_type"])
	assert.Equal(t, 2.0, fc.Features[2].Properties["index"])
}

func TestWriteGeoJSONSkipsUnpositioned(t *testing.T) {
	reader := parser.NewMemoryReader().
		AddNode(1, 1, 1, parser.OSMTags{"amenity": "parking"}).
		AddWay(5, nil, parser.OSMTags{"amenity": "parking", "name": "empty"})
	result, err := Extract(context.Background(), reader, ExtractOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, result.Parking))
	assert.NotContains(t, buf.String(), "empty")
	assert.Contains(t, buf.String(), `"osm_type":"node"`)
}

func TestSaveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	for _, run := range []string{"a", "b"} {
		parking := extractTestData(t)
		require.NoError(t, SaveTags(filepath.Join(dir, run+".tags"), parking.Tags))
		require.NoError(t, SaveTagsCSV(filepath.Join(dir, run+".csv"), parking))
	}
	for _, ext := range []string{".tags", ".csv"} {
		a, err := os.ReadFile(filepath.Join(dir, "a"+ext))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir, "b"+ext))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestSaveLoadCompressed(t *testing.T) {
	parking := extractTestData(t)
	file := filepath.Join(t.TempDir(), "parking_tags.zst")

	require.NoError(t, SaveTags(file, parking.Tags))
	tags, err := LoadTags(file)
	require.NoError(t, err)
	assert.Equal(t, parking.Tags, tags)
}

func TestSaveFailureKeepsResult(t *testing.T) {
	parking := extractTestData(t)
	before := append(Array[Tags](nil), parking.Tags...)

	err := SaveTagsCSV(filepath.Join(t.TempDir(), "missing", "parking.csv"), parking)
	assert.Error(t, err)
	assert.Equal(t, before, parking.Tags)
	assert.Equal(t, 4, parking.Len())
}
