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
	"github.com/tomoncle/peopledb/database"
)

// Option configures a repository at construction time.
type Option func(o *options)

type sqlOverride struct {
	op   Operation
	text string
}

type options struct {
	overrides []sqlOverride
	bindType  int
	returning bool
	logger    database.Logger
}

// WithSQL declares the statement to use for op instead of the repository
// default. At most one override per operation kind is accepted.
func WithSQL(op Operation, text string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, sqlOverride{op: op, text: text})
	}
}

// WithBindType rewrites '?' placeholders for drivers that expect another
// style, e.g. sqlx.DOLLAR for lib/pq on a raw *sql.DB. Bun connections
// interpolate '?' themselves and need no rewriting.
func WithBindType(bindType int) Option {
	return func(o *options) {
		o.bindType = bindType
	}
}

// WithReturningKeys reads the generated identity from the first column of the
// row returned by the SAVE statement (INSERT ... RETURNING ID) instead of
// sql.Result.LastInsertId.
func WithReturningKeys() Option {
	return func(o *options) {
		o.returning = true
	}
}

func WithLogger(logger database.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
