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
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tomoncle/peopledb/database"
	"gopkg.in/guregu/null.v4"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", configErr(Update, "people defines no SQL"))
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrPersistence)
	assert.True(t, IsConfiguration(err))
	assert.False(t, IsMapping(err))

	assert.True(t, IsMapping(NewMappingError("bad region %q", "MOON")))
	assert.False(t, IsPersistence(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	err := configErr(Update, "people defines no SQL")
	assert.Equal(t, "configuration error in UPDATE: people defines no SQL", err.Error())

	cause := errors.New("boom")
	err = persistenceErr(Count, "people", cause)
	assert.Equal(t, "persistence error in COUNT: people statement failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestPersistenceErrorCarriesReason(t *testing.T) {
	err := persistenceErr(Save, "people", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.Equal(t, database.DuplicateKeyErr, err.Reason)

	err = persistenceErr(Save, "people", errors.New("NOT NULL constraint failed: PEOPLE.FIRST_NAME"))
	assert.Equal(t, database.NotNullViolationErr, err.Reason)
}

func TestBinderKeepsPositionOrder(t *testing.T) {
	dob := time.Date(1980, 11, 15, 15, 15, 0, 0, time.FixedZone("-6", -6*3600))
	b := &Binder{}
	b.String("John").
		NullString(null.String{}).
		Int64(4).
		NullInt(null.IntFrom(9)).
		NullInt(null.Int{}).
		Decimal(decimal.RequireFromString("1.5")).
		Timestamp(dob).
		Null()

	args := b.Args()
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, "John", args[0])
	assert.Nil(t, args[1])
	assert.Equal(t, int64(4), args[2])
	assert.Equal(t, int64(9), args[3])
	assert.Nil(t, args[4])
	assert.Equal(t, time.UTC, args[6].(time.Time).Location())
	assert.True(t, dob.Equal(args[6].(time.Time)))
	assert.Nil(t, args[7])
}
