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
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

// Binder collects positional statement parameters. Only the value kinds the
// store surface understands are offered: string, int64, decimal, timestamp
// and null.
type Binder struct {
	args []interface{}
}

func (b *Binder) String(v string) *Binder {
	b.args = append(b.args, v)
	return b
}

// NullString binds v, or null when v is not valid.
func (b *Binder) NullString(v null.String) *Binder {
	if !v.Valid {
		return b.Null()
	}
	return b.String(v.String)
}

func (b *Binder) Int64(v int64) *Binder {
	b.args = append(b.args, v)
	return b
}

// NullInt binds v, or null when v is not valid.
func (b *Binder) NullInt(v null.Int) *Binder {
	if !v.Valid {
		return b.Null()
	}
	return b.Int64(v.Int64)
}

// Decimal binds v as its exact decimal text.
func (b *Binder) Decimal(v decimal.Decimal) *Binder {
	b.args = append(b.args, v)
	return b
}

// Timestamp binds t normalised to UTC.
func (b *Binder) Timestamp(t time.Time) *Binder {
	b.args = append(b.args, t.UTC())
	return b
}

func (b *Binder) Null() *Binder {
	b.args = append(b.args, nil)
	return b
}

// Len returns the number of parameters bound so far.
func (b *Binder) Len() int {
	return len(b.args)
}

// Args returns the bound parameters in position order.
func (b *Binder) Args() []interface{} {
	return b.args
}
