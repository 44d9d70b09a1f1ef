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

package peopledb

import (
	"context"
	"sync"

	"github.com/tomoncle/peopledb/database"
	"github.com/tomoncle/peopledb/people"
	"github.com/tomoncle/peopledb/repository"
	"github.com/uptrace/bun"
)

type Service interface {
	// Get returns the person stored under id. ok is false when no row matches.
	Get(ctx context.Context, id int64) (p *people.Person, ok bool, err error)

	// All returns every stored person, ordered by id.
	All(ctx context.Context) ([]*people.Person, error)

	// Count returns the number of stored people.
	Count(ctx context.Context) (int64, error)

	// Save inserts people and their unsaved addresses in one transaction.
	Save(ctx context.Context, persons ...*people.Person) error

	// Update rewrites the name, birth date and salary of a stored person.
	Update(ctx context.Context, p *people.Person) error

	// Delete removes people by identity in a single statement.
	Delete(ctx context.Context, persons ...*people.Person) error

	// WithTx runs fn with a people repository bound to a new transaction,
	// committing when fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo *people.PeopleRepository) error) error

	// Repository returns the repository bound to the service connection.
	Repository() (*people.PeopleRepository, error)
}

type peopleServiceImpl struct {
	db   *bun.DB
	opts []repository.Option

	once sync.Once
	repo *people.PeopleRepository
	err  error
}

// NewService returns a Service backed by the global database connection
// opened with database.InitDB. opts apply to every people repository the
// service creates.
func NewService(opts ...repository.Option) Service {
	return &peopleServiceImpl{opts: opts}
}

// NewServiceWithDB returns a Service bound to db.
func NewServiceWithDB(db *bun.DB, opts ...repository.Option) Service {
	return &peopleServiceImpl{db: db, opts: opts}
}

func (s *peopleServiceImpl) conn() (*bun.DB, error) {
	db := s.db
	if db == nil {
		db = database.GetDB()
	}
	if db == nil {
		return nil, repository.NewConfigurationError(0, "database not initialized")
	}
	return db, nil
}

func (s *peopleServiceImpl) Repository() (*people.PeopleRepository, error) {
	s.once.Do(func() {
		db, err := s.conn()
		if err != nil {
			s.err = err
			return
		}
		s.repo, s.err = people.NewPeopleRepository(db, s.opts...)
	})
	return s.repo, s.err
}

func (s *peopleServiceImpl) Get(ctx context.Context, id int64) (*people.Person, bool, error) {
	repo, err := s.Repository()
	if err != nil {
		return nil, false, err
	}
	return repo.FindByID(ctx, id)
}

func (s *peopleServiceImpl) All(ctx context.Context) ([]*people.Person, error) {
	repo, err := s.Repository()
	if err != nil {
		return nil, err
	}
	return repo.FindAll(ctx)
}

func (s *peopleServiceImpl) Count(ctx context.Context) (int64, error) {
	repo, err := s.Repository()
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx)
}

func (s *peopleServiceImpl) Save(ctx context.Context, persons ...*people.Person) error {
	return s.WithTx(ctx, func(ctx context.Context, repo *people.PeopleRepository) error {
		for _, p := range persons {
			if _, err := repo.Save(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *peopleServiceImpl) Update(ctx context.Context, p *people.Person) error {
	repo, err := s.Repository()
	if err != nil {
		return err
	}
	return repo.Update(ctx, p)
}

func (s *peopleServiceImpl) Delete(ctx context.Context, persons ...*people.Person) error {
	repo, err := s.Repository()
	if err != nil {
		return err
	}
	return repo.DeleteMany(ctx, persons...)
}

func (s *peopleServiceImpl) WithTx(ctx context.Context, fn func(ctx context.Context, repo *people.PeopleRepository) error) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		repo, err := people.NewPeopleRepository(tx, s.opts...)
		if err != nil {
			return err
		}
		return fn(ctx, repo)
	})
}
