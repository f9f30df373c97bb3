package parking

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	. "github.com/ttpr0/go-parking/util"
)

//*******************************************
// binary tags
//*******************************************

// WriteTags writes every field as its bytes followed by a NUL, objects in
// index order and fields in ParkingTag order.
func WriteTags(writer io.Writer, tags Array[Tags]) error {
	out := bufio.NewWriter(writer)
	for i := range tags {
		for _, value := range tags[i] {
			out.WriteString(value)
			out.WriteByte(0)
		}
	}
	return out.Flush()
}

func SaveTags(file string, tags Array[Tags]) error {
	return _Save(file, func(w io.Writer) error {
		return WriteTags(w, tags)
	})
}

// ReadTags parses the output of WriteTags.
func ReadTags(reader io.Reader) (Array[Tags], error) {
	in := bufio.NewReader(reader)
	tags := NewArray[Tags](0)
	var row Tags
	field := 0
	for {
		value, err := in.ReadString(0)
		if err == io.EOF {
			if value != "" || field != 0 {
				return nil, eris.Errorf("truncated tag dump after %d objects", len(tags))
			}
			return tags, nil
		}
		if err != nil {
			return nil, err
		}
		row[field] = value[:len(value)-1]
		field += 1
		if field == TAG_COUNT {
			tags = append(tags, row)
			row = Tags{}
			field = 0
		}
	}
}

func LoadTags(file string) (Array[Tags], error) {
	in, err := OpenInput(file)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	tags, err := ReadTags(in)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", file)
	}
	return tags, nil
}

//*******************************************
// csv
//*******************************************

// WriteTagsCSV writes a "latitude,longitude,<tags>" table. Values are not
// quoted, so separators inside values break the column layout.
func WriteTagsCSV(writer io.Writer, parking *ExtractedParking) error {
	out := bufio.NewWriter(writer)
	out.WriteString("latitude,longitude")
	for _, key := range tag_keys {
		out.WriteByte(',')
		out.WriteString(key)
	}
	out.WriteByte('\n')

	for i := 0; i < parking.Len(); i++ {
		out.WriteString(_FormatCoord(parking.Latitude[i]))
		out.WriteByte(',')
		out.WriteString(_FormatCoord(parking.Longitude[i]))
		for _, value := range parking.Tags[i] {
			out.WriteByte(',')
			out.WriteString(value)
		}
		out.WriteByte('\n')
	}
	return out.Flush()
}

func SaveTagsCSV(file string, parking *ExtractedParking) error {
	return _Save(file, func(w io.Writer) error {
		return WriteTagsCSV(w, parking)
	})
}

type _CSVRow struct {
	Latitude         float32 `csv:"latitude"`
	Longitude        float32 `csv:"longitude"`
	Name             string  `csv:"name"`
	Ref              string  `csv:"ref"`
	Access           string  `csv:"access"`
	Parking          string  `csv:"parking"`
	ParkRide         string  `csv:"park_ride"`
	Fee              string  `csv:"fee"`
	Supervised       string  `csv:"supervised"`
	Capacity         string  `csv:"capacity"`
	CapacityDisabled string  `csv:"capacity_disabled"`
	CapacityParent   string  `csv:"capacity_parent"`
	CapacityCharging string  `csv:"capacity_charging"`
	Surface          string  `csv:"surface"`
	Maxstay          string  `csv:"maxstay"`
	OpeningHours     string  `csv:"opening_hours"`
	OperatorName     string  `csv:"operator"`
	Website          string  `csv:"website"`
	HGV              string  `csv:"hgv"`
	Bus              string  `csv:"bus"`
}

func (self *_CSVRow) _Tags() Tags {
	return Tags{
		self.Name, self.Ref, self.Access, self.Parking, self.ParkRide, self.Fee,
		self.Supervised, self.Capacity, self.CapacityDisabled, self.CapacityParent,
		self.CapacityCharging, self.Surface, self.Maxstay, self.OpeningHours,
		self.OperatorName, self.Website, self.HGV, self.Bus,
	}
}

// ReadTagsCSV parses the output of WriteTagsCSV. Rows split by separators
// inside values are skipped. The table does not tell points from areas, so
// every row is counted as a point.
func ReadTagsCSV(reader io.Reader) (*ExtractedParking, error) {
	parking := &ExtractedParking{
		Latitude:  NewArray[float32](0),
		Longitude: NewArray[float32](0),
		Tags:      NewArray[Tags](0),
	}
	for row, err := range ReadCSV[_CSVRow](reader, ',') {
		if err != nil {
			return nil, err
		}
		parking.Latitude = append(parking.Latitude, row.Latitude)
		parking.Longitude = append(parking.Longitude, row.Longitude)
		parking.Tags = append(parking.Tags, row._Tags())
	}
	parking.NodeCount = parking.Tags.Length()
	return parking, nil
}

func LoadTagsCSV(file string) (*ExtractedParking, error) {
	in, err := OpenInput(file)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	parking, err := ReadTagsCSV(in)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", file)
	}
	return parking, nil
}

func _FormatCoord(value float32) string {
	return strconv.FormatFloat(float64(value), 'f', -1, 32)
}

//*******************************************
// geojson
//*******************************************

// WriteGeoJSON writes one point feature per object with its index and
// non-empty tags as properties. Objects without a position (ways without
// nodes) have no point and are left out.
func WriteGeoJSON(writer io.Writer, parking *ExtractedParking) error {
	fc := geojson.NewFeatureCollection()
	for i := 0; i < parking.Len(); i++ {
		lat, lon := float64(parking.Latitude[i]), float64(parking.Longitude[i])
		if math.IsNaN(lat) || math.IsNaN(lon) {
			continue
		}
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.Properties["index"] = i
		f.Properties["osm_type"] = parking.Kind(i).String()
		for t, value := range parking.Tags[i] {
			if value == "" {
				continue
			}
			f.Properties[tag_keys[t]] = value
		}
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

func SaveGeoJSON(file string, parking *ExtractedParking) error {
	return _Save(file, func(w io.Writer) error {
		return WriteGeoJSON(w, parking)
	})
}

//*******************************************
// util
//*******************************************

func _Save(file string, write func(w io.Writer) error) error {
	out, err := CreateOutput(file)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return eris.Wrapf(err, "write %s", file)
	}
	if err := out.Close(); err != nil {
		return eris.Wrapf(err, "close %s", file)
	}
	return nil
}
