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
	"reflect"
	"strings"

	"gopkg.in/guregu/null.v4"
)

// Identity reads and writes the generated key of an entity.
type Identity[T any] struct {
	Get func(entity *T) null.Int
	Set func(entity *T, id int64)
}

func (i Identity[T]) valid() bool {
	return i.Get != nil && i.Set != nil
}

var (
	nullIntType    = reflect.TypeOf(null.Int{})
	sqlNullIntType = reflect.TypeOf(sql.NullInt64{})
)

// TaggedIdentity locates the single exported field of T whose bun tag marks it
// as the primary key (`bun:"id,pk,autoincrement"`) and returns an accessor pair
// over it. The field must be int64, *int64, null.Int or sql.NullInt64; a zero
// int64 reads as "no identity".
//
// The lookup runs once, here; the returned functions do no type inspection.
func TaggedIdentity[T any]() (Identity[T], error) {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil || typ.Kind() != reflect.Struct {
		return Identity[T]{}, configErr(0, "identity: %v is not a struct type", typ)
	}

	index := -1
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !isPKTag(f.Tag.Get("bun")) {
			continue
		}
		if index >= 0 {
			return Identity[T]{}, configErr(0, "identity: %s has more than one pk field", typ.Name())
		}
		if !f.IsExported() {
			return Identity[T]{}, configErr(0, "identity: %s.%s is not exported", typ.Name(), f.Name)
		}
		index = i
	}
	if index < 0 {
		return Identity[T]{}, configErr(0, "identity: %s has no pk field", typ.Name())
	}

	field := typ.Field(index)
	switch field.Type {
	case nullIntType:
		return Identity[T]{
			Get: func(e *T) null.Int {
				return reflect.ValueOf(e).Elem().Field(index).Interface().(null.Int)
			},
			Set: func(e *T, id int64) {
				reflect.ValueOf(e).Elem().Field(index).Set(reflect.ValueOf(null.IntFrom(id)))
			},
		}, nil
	case sqlNullIntType:
		return Identity[T]{
			Get: func(e *T) null.Int {
				return null.Int{NullInt64: reflect.ValueOf(e).Elem().Field(index).Interface().(sql.NullInt64)}
			},
			Set: func(e *T, id int64) {
				reflect.ValueOf(e).Elem().Field(index).Set(reflect.ValueOf(sql.NullInt64{Int64: id, Valid: true}))
			},
		}, nil
	}

	switch {
	case field.Type.Kind() == reflect.Int64:
		return Identity[T]{
			Get: func(e *T) null.Int {
				v := reflect.ValueOf(e).Elem().Field(index).Int()
				return null.NewInt(v, v != 0)
			},
			Set: func(e *T, id int64) {
				reflect.ValueOf(e).Elem().Field(index).SetInt(id)
			},
		}, nil
	case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Int64:
		return Identity[T]{
			Get: func(e *T) null.Int {
				v := reflect.ValueOf(e).Elem().Field(index)
				if v.IsNil() {
					return null.Int{}
				}
				return null.IntFrom(v.Elem().Int())
			},
			Set: func(e *T, id int64) {
				p := reflect.New(field.Type.Elem())
				p.Elem().SetInt(id)
				reflect.ValueOf(e).Elem().Field(index).Set(p)
			},
		}, nil
	}
	return Identity[T]{}, configErr(0, "identity: %s.%s has unsupported type %s", typ.Name(), field.Name, field.Type)
}

func isPKTag(tag string) bool {
	if tag == "" {
		return false
	}
	parts := strings.Split(tag, ",")
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "pk" {
			return true
		}
	}
	return false
}
