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
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tomoncle/peopledb/database"
)

// Repository is the generic CRUD engine bound to one connection.
type Repository[T any] interface {
	CrudRepository[T]

	// SQLFor returns the statement the repository would execute for op.
	SQLFor(op Operation) (string, error)

	Name() string
}

type baseRepositoryImpl[T any] struct {
	conn      Conn
	desc      Descriptor[T]
	sql       *sqlResolver
	bindType  int
	returning bool
	logger    database.Logger
}

// New returns a repository executing the descriptor's statements on conn.
// The caller owns conn: it is never opened, closed or committed here.
func New[T any](conn Conn, desc Descriptor[T], opts ...Option) (Repository[T], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if desc.Name == "" {
		var zero T
		desc.Name = fmt.Sprintf("%T", zero)
	}
	if conn == nil {
		return nil, configErr(0, "%s: connection cannot be nil", desc.Name)
	}
	if !desc.Identity.valid() {
		return nil, configErr(0, "%s: identity accessor is not defined", desc.Name)
	}
	if desc.MapRow == nil {
		return nil, configErr(0, "%s: row mapper is not defined", desc.Name)
	}
	if desc.UpdateParams < 0 {
		return nil, configErr(Update, "%s: negative update parameter count", desc.Name)
	}

	resolver, err := newSQLResolver(desc.Name, desc.Defaults, o.overrides)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = database.GetLogger()
	}

	return &baseRepositoryImpl[T]{
		conn:      conn,
		desc:      desc,
		sql:       resolver,
		bindType:  o.bindType,
		returning: o.returning,
		logger:    logger,
	}, nil
}

func (r *baseRepositoryImpl[T]) Name() string { return r.desc.Name }

func (r *baseRepositoryImpl[T]) SQLFor(op Operation) (string, error) {
	return r.sql.resolve(op)
}

func (r *baseRepositoryImpl[T]) Save(ctx context.Context, entity *T) (*T, error) {
	text, err := r.sql.resolve(Save)
	if err != nil {
		return nil, err
	}
	if r.desc.BindSave == nil {
		return nil, configErr(Save, "%s has no save binder", r.desc.Name)
	}

	b := &Binder{}
	if err := r.desc.BindSave(ctx, entity, b); err != nil {
		return nil, r.bindErr(Save, err)
	}

	id, err := r.insert(ctx, text, b.Args())
	if err != nil {
		return nil, err
	}
	r.desc.Identity.Set(entity, id)
	return entity, nil
}

func (r *baseRepositoryImpl[T]) insert(ctx context.Context, text string, args []interface{}) (int64, error) {
	query := r.rebind(text)
	r.trace(Save, query, args)

	if r.returning {
		rows, err := r.conn.QueryContext(ctx, query, args...)
		if err != nil {
			return 0, r.storeErr(Save, err)
		}
		defer rows.Close()
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return 0, r.storeErr(Save, err)
			}
			return 0, r.storeErr(Save, errors.New("no generated key returned"))
		}
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, r.storeErr(Save, err)
		}
		return id, nil
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, r.storeErr(Save, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.storeErr(Save, err)
	}
	if affected, err := res.RowsAffected(); err == nil {
		r.logger.Debug("Records affected", "repository", r.desc.Name, "op", Save, "rows", affected)
	}
	return id, nil
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	text, err := r.sql.resolve(Update)
	if err != nil {
		return err
	}
	id := r.desc.Identity.Get(entity)
	if !id.Valid {
		return configErr(Update, "%s entity has no identity", r.desc.Name)
	}
	if r.desc.BindUpdate == nil {
		return configErr(Update, "%s has no update binder", r.desc.Name)
	}

	b := &Binder{}
	if err := r.desc.BindUpdate(ctx, entity, b); err != nil {
		return r.bindErr(Update, err)
	}
	if b.Len() != r.desc.UpdateParams {
		return configErr(Update, "%s bound %d update parameters, declared %d",
			r.desc.Name, b.Len(), r.desc.UpdateParams)
	}
	b.Int64(id.Int64)

	_, err = r.exec(ctx, Update, text, b.Args()...)
	return err
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, entity *T) error {
	text, err := r.sql.resolve(DeleteOne)
	if err != nil {
		return err
	}
	id := r.desc.Identity.Get(entity)
	if !id.Valid {
		return configErr(DeleteOne, "%s entity has no identity", r.desc.Name)
	}
	_, err = r.exec(ctx, DeleteOne, text, id.Int64)
	return err
}

func (r *baseRepositoryImpl[T]) DeleteMany(ctx context.Context, entities ...*T) error {
	text, err := r.sql.resolve(DeleteMany)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(entities))
	for i, e := range entities {
		id := r.desc.Identity.Get(e)
		if !id.Valid {
			return configErr(DeleteMany, "%s entity at position %d has no identity", r.desc.Name, i)
		}
		ids = append(ids, id.Int64)
	}
	if len(ids) == 0 {
		return nil
	}

	_, err = r.exec(ctx, DeleteMany, expandIDs(text, ids))
	return err
}

func (r *baseRepositoryImpl[T]) FindByID(ctx context.Context, id int64) (*T, bool, error) {
	text, err := r.sql.resolve(FindByID)
	if err != nil {
		return nil, false, err
	}

	var found *T
	err = r.query(ctx, FindByID, text, []interface{}{id}, func(row *Row) (bool, error) {
		entity, err := r.desc.MapRow(row)
		if err != nil {
			return false, err
		}
		found = entity
		return false, nil
	})
	if err != nil {
		return nil, false, err
	}
	return found, found != nil, nil
}

func (r *baseRepositoryImpl[T]) FindAll(ctx context.Context) ([]*T, error) {
	text, err := r.sql.resolve(FindAll)
	if err != nil {
		return nil, err
	}

	entities := make([]*T, 0)
	err = r.query(ctx, FindAll, text, nil, func(row *Row) (bool, error) {
		entity, err := r.desc.MapRow(row)
		if err != nil {
			return false, err
		}
		entities = append(entities, entity)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context) (int64, error) {
	text, err := r.sql.resolve(Count)
	if err != nil {
		return 0, err
	}

	query := r.rebind(text)
	r.trace(Count, query, nil)
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return 0, r.storeErr(Count, err)
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, r.storeErr(Count, err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, r.storeErr(Count, err)
	}
	return count, nil
}

func (r *baseRepositoryImpl[T]) exec(ctx context.Context, op Operation, text string, args ...interface{}) (sql.Result, error) {
	query := r.rebind(text)
	r.trace(op, query, args)
	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, r.storeErr(op, err)
	}
	if affected, err := res.RowsAffected(); err == nil {
		r.logger.Debug("Records affected", "repository", r.desc.Name, "op", op, "rows", affected)
	}
	return res, nil
}

// query runs text and hands each row to fn until fn returns false.
func (r *baseRepositoryImpl[T]) query(ctx context.Context, op Operation, text string, args []interface{}, fn func(*Row) (bool, error)) error {
	query := r.rebind(text)
	r.trace(op, query, args)
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return r.storeErr(op, err)
	}
	defer rows.Close()

	labels, err := rows.Columns()
	if err != nil {
		return r.storeErr(op, err)
	}
	for rows.Next() {
		row, err := scanRow(rows, labels)
		if err != nil {
			return r.storeErr(op, err)
		}
		more, err := fn(row)
		if err != nil {
			return r.mapErr(op, err)
		}
		if !more {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return r.storeErr(op, err)
	}
	return nil
}

func (r *baseRepositoryImpl[T]) rebind(text string) string {
	return sqlx.Rebind(r.bindType, text)
}

func (r *baseRepositoryImpl[T]) trace(op Operation, query string, args []interface{}) {
	r.logger.Debug("Executing statement", "repository", r.desc.Name, "op", op, "sql", query, "args", args)
}

func (r *baseRepositoryImpl[T]) storeErr(op Operation, err error) error {
	r.logger.Warn("Statement failed", "repository", r.desc.Name, "op", op, "error", err)
	return persistenceErr(op, r.desc.Name, err)
}

// bindErr passes repository errors from nested saves through unchanged.
func (r *baseRepositoryImpl[T]) bindErr(op Operation, err error) error {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return err
	}
	return &Error{Kind: PersistenceError, Op: op, Message: r.desc.Name + " parameter binding failed", Cause: err}
}

func (r *baseRepositoryImpl[T]) mapErr(op Operation, err error) error {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		if repoErr.Op == 0 {
			repoErr.Op = op
		}
		return repoErr
	}
	return &Error{Kind: MappingError, Op: op, Message: r.desc.Name + " row mapping failed", Cause: err}
}
