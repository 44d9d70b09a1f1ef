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

	"github.com/tomoncle/peopledb/repository"
	"gopkg.in/guregu/null.v4"
)

// addressUpdateParams is the number of SET columns of UpdateAddressSQL.
const addressUpdateParams = 8

// AddressRepository stores Address rows.
type AddressRepository struct {
	repository.Repository[Address]
}

// NewAddressRepository binds an address repository to conn. On PostgreSQL
// connections the generated key is read through RETURNING.
func NewAddressRepository(conn repository.Conn, opts ...repository.Option) (*AddressRepository, error) {
	identity, err := repository.TaggedIdentity[Address]()
	if err != nil {
		return nil, err
	}

	returning := usesReturning(conn)
	if returning {
		opts = append([]repository.Option{repository.WithReturningKeys()}, opts...)
	}
	repo, err := repository.New(conn, repository.Descriptor[Address]{
		Name:         "AddressRepository",
		Defaults:     addressSQL(returning),
		Identity:     identity,
		BindSave:     bindAddress,
		BindUpdate:   bindAddress,
		UpdateParams: addressUpdateParams,
		MapRow:       mapAddress,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &AddressRepository{Repository: repo}, nil
}

func bindAddress(_ context.Context, a *Address, b *repository.Binder) error {
	b.String(a.StreetAddress).
		NullString(a.Address2).
		String(a.City).
		String(a.State).
		String(a.Postcode).
		NullString(a.County)
	if a.Region.IsValid() {
		b.String(a.Region.Name())
	} else {
		b.Null()
	}
	b.String(a.Country)
	return nil
}

func mapAddress(row *repository.Row) (*Address, error) {
	id, err := row.Int64("ID")
	if err != nil {
		return nil, err
	}
	return extractAddress(row, id)
}

// extractAddress reads the address columns of row, which may be a prefixed
// view such as row.Nested("HOME_").
func extractAddress(row *repository.Row, id int64) (*Address, error) {
	f := &fieldReader{row: row}
	a := &Address{
		ID:            null.IntFrom(id),
		StreetAddress: f.str("STREET_ADDRESS"),
		Address2:      f.nullStr("ADDRESS2"),
		City:          f.str("CITY"),
		State:         f.str("STATE"),
		Postcode:      f.str("POSTCODE"),
		County:        f.nullStr("COUNTY"),
		Country:       f.str("COUNTRY"),
	}
	region := f.nullStr("REGION")
	if f.err != nil {
		return nil, f.err
	}
	if region.Valid && region.String != "" {
		r, err := ParseRegion(region.String)
		if err != nil {
			return nil, err
		}
		a.Region = r
	}
	return a, nil
}

// fieldReader keeps the first lookup error so a mapper can read every alias
// and check once.
type fieldReader struct {
	row *repository.Row
	err error
}

func (f *fieldReader) nullStr(alias string) null.String {
	if f.err != nil {
		return null.String{}
	}
	v, err := f.row.NullString(alias)
	f.err = err
	return v
}

func (f *fieldReader) str(alias string) string {
	return f.nullStr(alias).ValueOrZero()
}
