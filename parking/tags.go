package parking

import (
	"errors"

	"github.com/ttpr0/go-parking/parser"
)

//*******************************************
// parking tags
//*******************************************

// ParkingTag enumerates the attributes kept per parking object, see
// https://wiki.openstreetmap.org/wiki/Tag:amenity%3Dparking
type ParkingTag byte

const (
	NAME ParkingTag = iota
	REF
	ACCESS
	PARKING
	PARK_RIDE
	FEE
	SUPERVISED
	CAPACITY
	CAPACITY_DISABLED
	CAPACITY_PARENT
	CAPACITY_CHARGING
	SURFACE
	MAXSTAY
	OPENING_HOURS
	OPERATOR_NAME
	WEBSITE
	HGV
	BUS
)

const TAG_COUNT = int(BUS) + 1

// OSM keys, also used as column names. OPERATOR_NAME is stored under "operator".
var tag_keys = [TAG_COUNT]string{
	"name",
	"ref",
	"access",
	"parking",
	"park_ride",
	"fee",
	"supervised",
	"capacity",
	"capacity_disabled",
	"capacity_parent",
	"capacity_charging",
	"surface",
	"maxstay",
	"opening_hours",
	"operator",
	"website",
	"hgv",
	"bus",
}

func (self ParkingTag) String() string {
	if int(self) >= TAG_COUNT {
		panic("unknown parking tag")
	}
	return tag_keys[self]
}

func ParkingTagFromString(s string) (ParkingTag, error) {
	if s == "operator_name" {
		return OPERATOR_NAME, nil
	}
	for i, key := range tag_keys {
		if key == s {
			return ParkingTag(i), nil
		}
	}
	return NAME, errors.New("unknown parking tag")
}

// TagKeys returns the serialized keys in enumeration order.
func TagKeys() [TAG_COUNT]string {
	return tag_keys
}

// Tags holds one value per ParkingTag, "" where the tag is missing.
type Tags [TAG_COUNT]string

func (self Tags) Get(tag ParkingTag) string {
	return self[tag]
}

func _ExtractTags(tags parser.ITagMap) Tags {
	var values Tags
	for i, key := range tag_keys {
		if value, ok := tags.Get(key); ok {
			values[i] = value
		}
	}
	return values
}
