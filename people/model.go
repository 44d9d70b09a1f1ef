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
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

// Person is a row of PEOPLE. Its identity is assigned by PeopleRepository.Save
// and is read-only for callers.
type Person struct {
	id              null.Int
	FirstName       string
	LastName        string
	DOB             time.Time
	Salary          decimal.Decimal
	Email           null.String
	HomeAddress     *Address
	BusinessAddress *Address
}

func NewPerson(firstName, lastName string, dob time.Time) *Person {
	return &Person{FirstName: firstName, LastName: lastName, DOB: dob}
}

// ID returns the stored identity, invalid until the person is saved.
func (p *Person) ID() null.Int { return p.id }

// Address is a row of ADDRESSES.
type Address struct {
	ID            null.Int    `bun:"id,pk,autoincrement"`
	StreetAddress string      `bun:"street_address"`
	Address2      null.String `bun:"address2"`
	City          string      `bun:"city"`
	State         string      `bun:"state"`
	Postcode      string      `bun:"postcode"`
	County        null.String `bun:"county"`
	Region        Region      `bun:"region"`
	Country       string      `bun:"country"`
}
