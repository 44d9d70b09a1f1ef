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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type shade int

const (
	shadeLight shade = iota + 1
	shadeDark
)

func (s shade) IsValid() bool { return s == shadeLight || s == shadeDark }
func (s shade) Number() int { return int(s) }
func (s shade) String() string { return s.Name() }
func (s shade) Desc() string { return s.Name() }

func (s shade) Name() string {
	switch s {
	case shadeLight:
		return "LIGHT"
	case shadeDark:
		return "DARK"
	}
	return IllegalName
}

func TestEnumSetParse(t *testing.T) {
	set := NewEnumSet(shadeLight, shadeDark)

	v, ok := set.Parse(" dark")
	assert.True(t, ok)
	assert.Equal(t, shadeDark, v)

	_, ok = set.Parse("grey")
	assert.False(t, ok)

	values := set.Values()
	values[0] = shadeDark
	assert.Equal(t, []shade{shadeLight, shadeDark}, set.Values())
}
