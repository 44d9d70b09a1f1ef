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

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		is   bool
		want SQLError
	}{
		{"nil", nil, false, UnknownErr},
		{"plain", errors.New("connection refused"), false, UnknownErr},
		{"no rows", fmt.Errorf("find: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"}, true, DuplicateKeyErr},
		{"mysql missing table", &mysql.MySQLError{Number: 1146}, true, NoTableErr},
		{"mysql other", &mysql.MySQLError{Number: 2006}, true, UnknownErr},
		{"pgx unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, true, DuplicateKeyErr},
		{"pgx wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UndefinedTable}), true, NoTableErr},
		{"pq not null", &pq.Error{Code: "23502"}, true, NotNullViolationErr},
		{"pq foreign key", &pq.Error{Code: "23503"}, true, ForeignKeyViolationErr},
		{"sqlite table", errors.New("SQL logic error: no such table: PEOPLE (1)"), true, NoTableErr},
		{"sqlite column", errors.New("no such column: P.SALARY"), true, NoColumnErr},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: PEOPLE.EMAIL (2067)"), true, DuplicateKeyErr},
		{"sqlite exists", errors.New("table PEOPLE already exists"), true, ExistTableErr},
		{"sqlite check", errors.New("CHECK constraint failed: SALARY"), true, CheckConstraintViolationErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is, got := IsSqlError(tc.err)
			assert.Equal(t, tc.is, is)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSQLErrorString(t *testing.T) {
	assert.Equal(t, "duplicate key", DuplicateKeyErr.String())
	assert.Equal(t, "undefined table", NoTableErr.String())
	assert.Equal(t, "unknown", SQLError(99).String())
}
