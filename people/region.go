/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package people

import (
	"github.com/tomoncle/peopledb/repository"
	"github.com/tomoncle/peopledb/types"
)

// Region is the stored region code of an address. The zero value means no
// region was recorded.
type Region int

const (
	RegionNone Region = iota
	RegionNorth
	RegionSouth
	RegionEast
	RegionWest
	RegionCentral
)

var _ types.BaseEnum = RegionNone

var regionNames = map[Region][2]string{
	RegionNorth:   {"NORTH", "North"},
	RegionSouth:   {"SOUTH", "South"},
	RegionEast:    {"EAST", "East"},
	RegionWest:    {"WEST", "West"},
	RegionCentral: {"CENTRAL", "Central"},
}

var regions = types.NewEnumSet(RegionNorth, RegionSouth, RegionEast, RegionWest, RegionCentral)

func (r Region) IsValid() bool {
	_, ok := regionNames[r]
	return ok
}

func (r Region) Number() int {
	if !r.IsValid() {
		return types.IllegalValue
	}
	return int(r)
}

func (r Region) Name() string {
	if n, ok := regionNames[r]; ok {
		return n[0]
	}
	return types.IllegalName
}

func (r Region) Desc() string {
	if n, ok := regionNames[r]; ok {
		return n[1]
	}
	return types.IllegalDesc
}

func (r Region) String() string { return r.Name() }

// ParseRegion reads a stored region code, ignoring case. An unknown code is a
// mapping error.
func ParseRegion(code string) (Region, error) {
	r, ok := regions.Parse(code)
	if !ok {
		return RegionNone, repository.NewMappingError("unrecognized region code %q", code)
	}
	return r, nil
}
