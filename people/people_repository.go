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

package people

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tomoncle/peopledb/repository"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/schema"
	"gopkg.in/guregu/null.v4"
)

// personUpdateParams is the number of SET columns of UpdatePersonSQL; the
// identity follows as parameter five.
const personUpdateParams = 4

var personIdentity = repository.Identity[Person]{
	Get: func(p *Person) null.Int { return p.id },
	Set: func(p *Person, id int64) { p.id = null.IntFrom(id) },
}

// PeopleRepository stores Person rows. Home and business addresses are saved
// through an AddressRepository on the same connection before the person row.
type PeopleRepository struct {
	repository.Repository[Person]
	addresses *AddressRepository
}

// NewPeopleRepository binds a people repository, and the address repository
// it composes, to conn. opts apply to the people repository only.
func NewPeopleRepository(conn repository.Conn, opts ...repository.Option) (*PeopleRepository, error) {
	addresses, err := NewAddressRepository(conn)
	if err != nil {
		return nil, err
	}
	return NewPeopleRepositoryWith(conn, addresses, opts...)
}

// NewPeopleRepositoryWith uses addresses for nested saves. addresses must be
// bound to the same connection as conn.
func NewPeopleRepositoryWith(conn repository.Conn, addresses *AddressRepository, opts ...repository.Option) (*PeopleRepository, error) {
	if addresses == nil {
		return nil, repository.NewConfigurationError(0, "PeopleRepository: address repository cannot be nil")
	}

	r := &PeopleRepository{addresses: addresses}
	returning := usesReturning(conn)
	if returning {
		opts = append([]repository.Option{repository.WithReturningKeys()}, opts...)
	}
	repo, err := repository.New(conn, repository.Descriptor[Person]{
		Name:         "PeopleRepository",
		Defaults:     peopleSQL(returning),
		Identity:     personIdentity,
		BindSave:     r.bindSave,
		BindUpdate:   bindPersonUpdate,
		UpdateParams: personUpdateParams,
		MapRow:       mapPerson,
	}, opts...)
	if err != nil {
		return nil, err
	}
	r.Repository = repo
	return r, nil
}

// Addresses returns the repository used for nested address saves.
func (r *PeopleRepository) Addresses() *AddressRepository {
	return r.addresses
}

func (r *PeopleRepository) bindSave(ctx context.Context, p *Person, b *repository.Binder) error {
	b.String(p.FirstName).
		String(p.LastName).
		Timestamp(p.DOB).
		Decimal(p.Salary).
		NullString(p.Email)

	for _, a := range []*Address{p.HomeAddress, p.BusinessAddress} {
		id, err := r.saveAddress(ctx, a)
		if err != nil {
			return err
		}
		b.NullInt(id)
	}
	return nil
}

// saveAddress returns the identity to store for a. An address that already
// has one is referenced as is.
func (r *PeopleRepository) saveAddress(ctx context.Context, a *Address) (null.Int, error) {
	if a == nil {
		return null.Int{}, nil
	}
	if !a.ID.Valid {
		if _, err := r.addresses.Save(ctx, a); err != nil {
			return null.Int{}, err
		}
	}
	return a.ID, nil
}

func bindPersonUpdate(_ context.Context, p *Person, b *repository.Binder) error {
	b.String(p.FirstName).
		String(p.LastName).
		Timestamp(p.DOB).
		Decimal(p.Salary)
	return nil
}

func mapPerson(row *repository.Row) (*Person, error) {
	home, err := repository.ExtractOptional(row, homePrefix, "ID", extractAddress)
	if err != nil {
		return nil, err
	}
	biz, err := repository.ExtractOptional(row, bizPrefix, "ID", extractAddress)
	if err != nil {
		return nil, err
	}

	id, err := row.Int64("ID")
	if err != nil {
		return nil, err
	}
	dob, err := row.Time("DOB")
	if err != nil {
		return nil, err
	}
	salary, err := row.NullDecimal("SALARY")
	if err != nil {
		return nil, err
	}

	f := &fieldReader{row: row}
	p := &Person{
		id:              null.IntFrom(id),
		FirstName:       f.str("FIRST_NAME"),
		LastName:        f.str("LAST_NAME"),
		DOB:             dob,
		Salary:          decimal.Zero,
		Email:           f.nullStr("EMAIL"),
		HomeAddress:     home,
		BusinessAddress: biz,
	}
	if f.err != nil {
		return nil, f.err
	}
	if salary.Valid {
		p.Salary = salary.Decimal
	}
	return p, nil
}

type dialectConn interface {
	Dialect() schema.Dialect
}

// usesReturning reports whether conn is a Bun PostgreSQL connection, where
// sql.Result carries no insert id.
func usesReturning(conn repository.Conn) bool {
	d, ok := conn.(dialectConn)
	return ok && d.Dialect() != nil && d.Dialect().Name() == dialect.PG
}
