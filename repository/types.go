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
	"context"
	"database/sql"
)

// Operation identifies which CRUD statement is being resolved.
type Operation int

const (
	Save Operation = iota + 1
	Update
	DeleteOne
	DeleteMany
	FindByID
	FindAll
	Count
)

func (o Operation) String() string {
	switch o {
	case Save:
		return "SAVE"
	case Update:
		return "UPDATE"
	case DeleteOne:
		return "DELETE_ONE"
	case DeleteMany:
		return "DELETE_MANY"
	case FindByID:
		return "FIND_BY_ID"
	case FindAll:
		return "FIND_ALL"
	case Count:
		return "COUNT"
	default:
		return "UNKNOWN"
	}
}

// Operations lists every operation kind in declaration order.
var Operations = []Operation{Save, Update, DeleteOne, DeleteMany, FindByID, FindAll, Count}

// Conn is the statement execution surface the engine depends on.
// *bun.DB, bun.Tx, *sql.DB, *sql.Tx, *sql.Conn and *sqlx.DB all satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// BindFunc fills the positional parameters of a SAVE or UPDATE statement.
type BindFunc[T any] func(ctx context.Context, entity *T, b *Binder) error

// MapFunc reconstructs one entity from an aliased result row.
type MapFunc[T any] func(row *Row) (*T, error)

// Descriptor is the capability set a concrete repository hands to the engine.
type Descriptor[T any] struct {
	// Name is used in log fields and error messages, e.g. "people".
	Name string

	// Defaults holds the statement used for each operation kind when no
	// override was declared.
	Defaults SQL

	Identity Identity[T]

	BindSave   BindFunc[T]
	BindUpdate BindFunc[T]

	// UpdateParams is the number of values BindUpdate binds. The identity is
	// bound after them, as parameter UpdateParams+1.
	UpdateParams int

	MapRow MapFunc[T]
}

// CrudRepository defines the CRUD operations of the generic engine.
type CrudRepository[T any] interface {
	Save(ctx context.Context, entity *T) (*T, error)

	Update(ctx context.Context, entity *T) error

	Delete(ctx context.Context, entity *T) error

	DeleteMany(ctx context.Context, entities ...*T) error

	FindByID(ctx context.Context, id int64) (*T, bool, error)

	FindAll(ctx context.Context) ([]*T, error)

	Count(ctx context.Context) (int64, error)
}
