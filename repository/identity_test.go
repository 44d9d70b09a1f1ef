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

package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

type withNullInt struct {
	ID   null.Int `bun:"id,pk,autoincrement"`
	Name string   `bun:"name"`
}

type withInt64 struct {
	Key int64 `bun:"key,pk"`
}

type withPointer struct {
	ID *int64 `bun:",pk"`
}

type withSQLNull struct {
	ID sql.NullInt64 `bun:"id,pk"`
}

type withoutPK struct {
	ID int64 `bun:"id"`
}

type withTwoPKs struct {
	A int64 `bun:"a,pk"`
	B int64 `bun:"b,pk"`
}

type withHiddenPK struct {
	id int64 `bun:"id,pk"`
}

type withStringPK struct {
	ID string `bun:"id,pk"`
}

func TestTaggedIdentityNullInt(t *testing.T) {
	identity, err := TaggedIdentity[withNullInt]()
	require.NoError(t, err)

	e := &withNullInt{Name: "x"}
	assert.False(t, identity.Get(e).Valid)
	identity.Set(e, 11)
	assert.Equal(t, null.IntFrom(11), e.ID)
	assert.Equal(t, int64(11), identity.Get(e).Int64)
}

func TestTaggedIdentityInt64ZeroIsAbsent(t *testing.T) {
	identity, err := TaggedIdentity[withInt64]()
	require.NoError(t, err)

	e := &withInt64{}
	assert.False(t, identity.Get(e).Valid)
	identity.Set(e, 3)
	assert.Equal(t, int64(3), e.Key)
	assert.True(t, identity.Get(e).Valid)
}

func TestTaggedIdentityPointer(t *testing.T) {
	identity, err := TaggedIdentity[withPointer]()
	require.NoError(t, err)

	e := &withPointer{}
	assert.False(t, identity.Get(e).Valid)
	identity.Set(e, 8)
	require.NotNil(t, e.ID)
	assert.Equal(t, int64(8), *e.ID)
}

func TestTaggedIdentitySQLNullInt64(t *testing.T) {
	identity, err := TaggedIdentity[withSQLNull]()
	require.NoError(t, err)

	e := &withSQLNull{}
	identity.Set(e, 2)
	assert.Equal(t, sql.NullInt64{Int64: 2, Valid: true}, e.ID)
	assert.Equal(t, null.IntFrom(2), identity.Get(e))
}

func TestTaggedIdentityRejectsBadDeclarations(t *testing.T) {
	_, err := TaggedIdentity[withoutPK]()
	assert.True(t, IsConfiguration(err), "missing pk")

	_, err = TaggedIdentity[withTwoPKs]()
	assert.True(t, IsConfiguration(err), "ambiguous pk")

	_, err = TaggedIdentity[withHiddenPK]()
	assert.True(t, IsConfiguration(err), "unexported pk")

	_, err = TaggedIdentity[withStringPK]()
	assert.True(t, IsConfiguration(err), "unsupported type")

	_, err = TaggedIdentity[int]()
	assert.True(t, IsConfiguration(err), "not a struct")
}
