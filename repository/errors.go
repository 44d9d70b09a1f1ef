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

	"github.com/tomoncle/peopledb/database"
)

// ErrorKind classifies failures surfaced by the engine.
type ErrorKind int

const (
	// ConfigurationError is a wiring defect in a concrete repository or an
	// operation invoked on an entity that lacks a required identity.
	ConfigurationError ErrorKind = iota + 1
	// PersistenceError means the store rejected a statement.
	PersistenceError
	// MappingError means a result row could not be turned into an entity.
	MappingError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration"
	case PersistenceError:
		return "persistence"
	case MappingError:
		return "mapping"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by repositories.
type Error struct {
	Kind    ErrorKind
	Op      Operation
	Message string
	// Reason is set for persistence errors the driver classification recognised.
	Reason database.SQLError
	Cause  error
}

// Sentinels for errors.Is; only the kind is compared.
var (
	ErrConfiguration = &Error{Kind: ConfigurationError}
	ErrPersistence   = &Error{Kind: PersistenceError}
	ErrMapping       = &Error{Kind: MappingError}
)

func (e *Error) Error() string {
	prefix := e.Kind.String() + " error"
	if e.Op != 0 {
		prefix += " in " + e.Op.String()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func configErr(op Operation, format string, args ...interface{}) *Error {
	return &Error{Kind: ConfigurationError, Op: op, Message: fmt.Sprintf(format, args...)}
}

func mappingErr(format string, args ...interface{}) *Error {
	return &Error{Kind: MappingError, Message: fmt.Sprintf(format, args...)}
}

// NewConfigurationError reports a wiring defect found by a concrete repository.
func NewConfigurationError(op Operation, format string, args ...interface{}) error {
	return configErr(op, format, args...)
}

// NewMappingError lets row mappers report values they cannot interpret,
// such as an unknown enumerated code.
func NewMappingError(format string, args ...interface{}) error {
	return mappingErr(format, args...)
}

func persistenceErr(op Operation, name string, cause error) *Error {
	e := &Error{
		Kind:    PersistenceError,
		Op:      op,
		Message: fmt.Sprintf("%s statement failed", name),
		Cause:   cause,
	}
	if ok, reason := database.IsSqlError(cause); ok {
		e.Reason = reason
	}
	return e
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsPersistence reports whether err is a persistence error.
func IsPersistence(err error) bool { return errors.Is(err, ErrPersistence) }

// IsMapping reports whether err is a mapping error.
func IsMapping(err error) bool { return errors.Is(err, ErrMapping) }
