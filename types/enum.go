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

package types

import "strings"

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// EnumSet indexes the values of one enum type by name, ignoring case.
type EnumSet[E BaseEnum] struct {
	values []E
	byName map[string]E
}

func NewEnumSet[E BaseEnum](values ...E) *EnumSet[E] {
	s := &EnumSet[E]{values: values, byName: make(map[string]E, len(values))}
	for _, v := range values {
		s.byName[strings.ToUpper(v.Name())] = v
	}
	return s
}

// Parse returns the value named name. Surrounding blanks are ignored.
func (s *EnumSet[E]) Parse(name string) (E, bool) {
	v, ok := s.byName[strings.ToUpper(strings.TrimSpace(name))]
	return v, ok
}

func (s *EnumSet[E]) Values() []E {
	out := make([]E, len(s.values))
	copy(out, s.values)
	return out
}
