package parking

import (
	"errors"

	"github.com/ttpr0/go-parking/parser"
	"gopkg.in/yaml.v3"
)

//*******************************************
// predicates
//*******************************************

// Predicate decides whether an OSM object is a parking object.
type Predicate func(tags parser.ITagMap) bool

func _HasValue(tags parser.ITagMap, key string, values ...string) bool {
	value, ok := tags.Get(key)
	if !ok {
		return false
	}
	for _, v := range values {
		if value == v {
			return true
		}
	}
	return false
}

func IsParking(tags parser.ITagMap) bool {
	if _HasValue(tags, "amenity", "parking") {
		return true
	}
	_, ok := tags.Get("parking")
	return ok
}

func IsHGVParking(tags parser.ITagMap) bool {
	return IsParking(tags) &&
		(_HasValue(tags, "hgv", "yes", "designated") || _HasValue(tags, "access", "hgv"))
}

// IsCharging accepts charging stations and parkings with charging capacity.
func IsCharging(tags parser.ITagMap) bool {
	if _HasValue(tags, "amenity", "charging_station") {
		return true
	}
	for _, key := range []string{"capacity:charging", "capacity_charging"} {
		value, ok := tags.Get(key)
		if ok && value != "" && value != "no" && value != "0" {
			return true
		}
	}
	return false
}

func IsHGVChargingParking(tags parser.ITagMap) bool {
	return IsHGVParking(tags) && IsCharging(tags)
}

func And(predicates ...Predicate) Predicate {
	return func(tags parser.ITagMap) bool {
		for _, p := range predicates {
			if !p(tags) {
				return false
			}
		}
		return true
	}
}

func Or(predicates ...Predicate) Predicate {
	return func(tags parser.ITagMap) bool {
		for _, p := range predicates {
			if p(tags) {
				return true
			}
		}
		return false
	}
}

//*******************************************
// predicate type
//*******************************************

type PredicateType byte

const (
	PARKING_ALL  PredicateType = 0
	HGV          PredicateType = 1
	CHARGING     PredicateType = 2
	HGV_CHARGING PredicateType = 3
)

func (self PredicateType) Predicate() Predicate {
	switch self {
	case HGV:
		return IsHGVParking
	case CHARGING:
		return IsCharging
	case HGV_CHARGING:
		return IsHGVChargingParking
	default:
		return IsParking
	}
}

func (self PredicateType) String() string {
	switch self {
	case PARKING_ALL:
		return "parking"
	case HGV:
		return "hgv"
	case CHARGING:
		return "charging"
	case HGV_CHARGING:
		return "hgv-charging"
	default:
		panic("unknown predicate type")
	}
}

func (self PredicateType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *PredicateType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := PredicateTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func PredicateTypeFromString(s string) (PredicateType, error) {
	switch s {
	case "parking", "":
		return PARKING_ALL, nil
	case "hgv":
		return HGV, nil
	case "charging", "ev":
		return CHARGING, nil
	case "hgv-charging", "hgv-ev":
		return HGV_CHARGING, nil
	default:
		return PARKING_ALL, errors.New("unknown predicate type")
	}
}
