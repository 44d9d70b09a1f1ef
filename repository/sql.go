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
	"strconv"
	"strings"
)

// IDsMarker is the literal a DELETE_MANY statement must contain. It is
// replaced textually with the comma-joined identities, e.g.
// "DELETE FROM PEOPLE WHERE ID IN (:ids)".
const IDsMarker = ":ids"

// SQL maps operation kinds to statement text.
type SQL map[Operation]string

// Lookup returns the statement for op if one is declared and not blank.
func (s SQL) Lookup(op Operation) (string, bool) {
	text, ok := s[op]
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// sqlResolver picks the statement for an operation: a declared override
// first, then the repository default. Built once per repository instance.
type sqlResolver struct {
	name      string
	overrides SQL
	defaults  SQL
}

func newSQLResolver(name string, defaults SQL, declared []sqlOverride) (*sqlResolver, error) {
	overrides := make(SQL, len(declared))
	for _, o := range declared {
		if _, dup := overrides[o.op]; dup {
			return nil, configErr(o.op, "%s declares more than one SQL override", name)
		}
		overrides[o.op] = o.text
	}
	return &sqlResolver{name: name, overrides: overrides, defaults: defaults}, nil
}

func (r *sqlResolver) resolve(op Operation) (string, error) {
	text, ok := r.overrides.Lookup(op)
	if !ok {
		text, ok = r.defaults.Lookup(op)
	}
	if !ok {
		return "", configErr(op, "%s defines no SQL", r.name)
	}
	if op == DeleteMany && !strings.Contains(text, IDsMarker) {
		return "", configErr(op, "%s statement lacks the %s marker", r.name, IDsMarker)
	}
	return text, nil
}

func expandIDs(text string, ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.ReplaceAll(text, IDsMarker, strings.Join(parts, ","))
}
