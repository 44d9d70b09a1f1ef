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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverPrefersOverride(t *testing.T) {
	r, err := newSQLResolver("people", SQL{Count: "SELECT COUNT(*) FROM PEOPLE"},
		[]sqlOverride{{op: Count, text: "SELECT COUNT(ID) FROM PEOPLE"}})
	require.NoError(t, err)

	text, err := r.resolve(Count)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(ID) FROM PEOPLE", text)
}

func TestResolverFallsBackToDefault(t *testing.T) {
	r, err := newSQLResolver("people", SQL{FindAll: "SELECT * FROM PEOPLE"},
		[]sqlOverride{{op: Count, text: "SELECT COUNT(ID) FROM PEOPLE"}})
	require.NoError(t, err)

	text, err := r.resolve(FindAll)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM PEOPLE", text)
}

func TestResolverBlankOverrideFallsBack(t *testing.T) {
	r, err := newSQLResolver("people", SQL{Count: "SELECT COUNT(*) FROM PEOPLE"},
		[]sqlOverride{{op: Count, text: " "}})
	require.NoError(t, err)

	text, err := r.resolve(Count)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM PEOPLE", text)
}

func TestResolverFailsWithoutStatement(t *testing.T) {
	r, err := newSQLResolver("people", nil, nil)
	require.NoError(t, err)

	for _, op := range Operations {
		_, err := r.resolve(op)
		assert.True(t, IsConfiguration(err), op.String())
	}
}

func TestExpandIDs(t *testing.T) {
	assert.Equal(t, "DELETE FROM PEOPLE WHERE ID IN (1,22,333)",
		expandIDs("DELETE FROM PEOPLE WHERE ID IN (:ids)", []int64{1, 22, 333}))
}

func TestOperationNames(t *testing.T) {
	names := make([]string, 0, len(Operations))
	for _, op := range Operations {
		names = append(names, op.String())
	}
	assert.Equal(t, []string{"SAVE", "UPDATE", "DELETE_ONE", "DELETE_MANY", "FIND_BY_ID", "FIND_ALL", "COUNT"}, names)
	assert.Equal(t, "UNKNOWN", Operation(0).String())
}
