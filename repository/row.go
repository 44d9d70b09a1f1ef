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
	"fmt"
	"strconv"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

// Row is one result row addressed by column label rather than position.
// Labels are normalised to SCREAMING_SNAKE so HOME_ID, home_id and homeId
// resolve to the same column whatever case the dialect reports.
type Row struct {
	values    map[string]interface{}
	ambiguous map[string]bool
	prefix    string
}

// NewRow builds a row from parallel label and value slices.
func NewRow(labels []string, values []interface{}) *Row {
	r := &Row{
		values:    make(map[string]interface{}, len(labels)),
		ambiguous: make(map[string]bool),
	}
	for i, label := range labels {
		key := normalizeAlias(label)
		if _, seen := r.values[key]; seen {
			r.ambiguous[key] = true
		}
		r.values[key] = values[i]
	}
	return r
}

func scanRow(rows *sql.Rows, labels []string) (*Row, error) {
	values := make([]interface{}, len(labels))
	ptrs := make([]interface{}, len(labels))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return NewRow(labels, values), nil
}

func normalizeAlias(alias string) string {
	return strcase.ToScreamingSnake(alias)
}

// Nested returns a view of the same row whose lookups are prefixed, e.g.
// row.Nested("HOME_").Value("CITY") reads HOME_CITY.
func (r *Row) Nested(prefix string) *Row {
	return &Row{values: r.values, ambiguous: r.ambiguous, prefix: r.prefix + prefix}
}

// Has reports whether alias is present in the row.
func (r *Row) Has(alias string) bool {
	_, ok := r.values[normalizeAlias(r.prefix+alias)]
	return ok
}

// Value returns the raw value for alias. An alias missing from the row, or
// carried by more than one column, is a mapping error.
func (r *Row) Value(alias string) (interface{}, error) {
	name := r.prefix + alias
	key := normalizeAlias(name)
	v, ok := r.values[key]
	if !ok {
		return nil, mappingErr("column not found for alias '%s'", name)
	}
	if r.ambiguous[key] {
		return nil, mappingErr("alias '%s' is carried by more than one column", name)
	}
	return v, nil
}

func (r *Row) NullInt(alias string) (null.Int, error) {
	v, err := r.Value(alias)
	if err != nil || v == nil {
		return null.Int{}, err
	}
	n, err := toInt64(v)
	if err != nil {
		return null.Int{}, mappingErr("alias '%s': %v", r.prefix+alias, err)
	}
	return null.IntFrom(n), nil
}

func (r *Row) Int64(alias string) (int64, error) {
	n, err := r.NullInt(alias)
	if err != nil {
		return 0, err
	}
	if !n.Valid {
		return 0, mappingErr("alias '%s' is null", r.prefix+alias)
	}
	return n.Int64, nil
}

func (r *Row) NullString(alias string) (null.String, error) {
	v, err := r.Value(alias)
	if err != nil || v == nil {
		return null.String{}, err
	}
	switch s := v.(type) {
	case string:
		return null.StringFrom(s), nil
	case []byte:
		return null.StringFrom(string(s)), nil
	default:
		return null.StringFrom(fmt.Sprint(s)), nil
	}
}

func (r *Row) String(alias string) (string, error) {
	s, err := r.NullString(alias)
	if err != nil {
		return "", err
	}
	if !s.Valid {
		return "", mappingErr("alias '%s' is null", r.prefix+alias)
	}
	return s.String, nil
}

func (r *Row) NullDecimal(alias string) (decimal.NullDecimal, error) {
	v, err := r.Value(alias)
	if err != nil || v == nil {
		return decimal.NullDecimal{}, err
	}
	var d decimal.Decimal
	if err := d.Scan(v); err != nil {
		return decimal.NullDecimal{}, mappingErr("alias '%s': %v", r.prefix+alias, err)
	}
	return decimal.NewNullDecimal(d), nil
}

func (r *Row) Decimal(alias string) (decimal.Decimal, error) {
	d, err := r.NullDecimal(alias)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.Valid {
		return decimal.Decimal{}, mappingErr("alias '%s' is null", r.prefix+alias)
	}
	return d.Decimal, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Time returns the timestamp for alias in UTC.
func (r *Row) Time(alias string) (time.Time, error) {
	v, err := r.Value(alias)
	if err != nil {
		return time.Time{}, err
	}
	var text string
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		text = t
	case []byte:
		text = string(t)
	case nil:
		return time.Time{}, mappingErr("alias '%s' is null", r.prefix+alias)
	default:
		return time.Time{}, mappingErr("alias '%s': cannot read %T as timestamp", r.prefix+alias, v)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, mappingErr("alias '%s': cannot parse timestamp %q", r.prefix+alias, text)
}

// ExtractOptional reads a nested entity stored under prefix. The identity
// alias is probed first; when it is null the entity is absent and
// (nil, nil) is returned without touching the remaining aliases.
func ExtractOptional[N any](row *Row, prefix, idAlias string, extract func(nested *Row, id int64) (*N, error)) (*N, error) {
	nested := row.Nested(prefix)
	id, err := nested.NullInt(idAlias)
	if err != nil {
		return nil, err
	}
	if !id.Valid {
		return nil, nil
	}
	return extract(nested, id.Int64)
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%v is not integral", n)
		}
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("cannot read %T as integer", v)
	}
}
