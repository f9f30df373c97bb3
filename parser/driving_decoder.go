package parser

import (
	. "github.com/ttpr0/go-parking/util"
)

// IWayDecoder decides which ways belong to a routing graph.
type IWayDecoder interface {
	IsValidHighway(tags ITagMap) bool
}

type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

var no_access = Dict[string, bool]{"no": true, "private": true, "agricultural": true, "forestry": true}

func (self *DrivingDecoder) IsValidHighway(tags ITagMap) bool {
	highway, ok := tags.Get("highway")
	if !ok {
		return false
	}
	if !driving_types.ContainsKey(highway) {
		return false
	}
	if area, _ := tags.Get("area"); area == "yes" {
		return false
	}
	if access, ok := tags.Get("motor_vehicle"); ok {
		return !no_access.ContainsKey(access)
	}
	if access, ok := tags.Get("access"); ok {
		return !no_access.ContainsKey(access)
	}
	return true
}

// TruckDecoder is DrivingDecoder without tracks and with hgv restrictions.
type TruckDecoder struct {
	DrivingDecoder
}

func (self *TruckDecoder) IsValidHighway(tags ITagMap) bool {
	if !self.DrivingDecoder.IsValidHighway(tags) {
		return false
	}
	if highway, _ := tags.Get("highway"); highway == "track" {
		return false
	}
	if hgv, ok := tags.Get("hgv"); ok {
		return !no_access.ContainsKey(hgv)
	}
	return true
}
