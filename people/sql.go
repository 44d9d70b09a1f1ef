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
	"fmt"
	"strings"

	"github.com/tomoncle/peopledb/repository"
)

const (
	homePrefix = "HOME_"
	bizPrefix  = "BIZ_"

	// returningID is appended to INSERT statements on dialects without
	// LastInsertId support.
	returningID = " RETURNING ID"
)

var addressColumns = []string{"ID", "STREET_ADDRESS", "ADDRESS2", "CITY", "STATE", "POSTCODE", "COUNTY", "REGION", "COUNTRY"}

const (
	InsertAddressSQL   = "INSERT INTO ADDRESSES (STREET_ADDRESS, ADDRESS2, CITY, STATE, POSTCODE, COUNTY, REGION, COUNTRY) VALUES(?, ?, ?, ?, ?, ?, ?, ?)"
	UpdateAddressSQL   = "UPDATE ADDRESSES SET STREET_ADDRESS=?, ADDRESS2=?, CITY=?, STATE=?, POSTCODE=?, COUNTY=?, REGION=?, COUNTRY=? WHERE ID=?"
	DeleteAddressSQL   = "DELETE FROM ADDRESSES WHERE ID=?"
	DeleteAddressesSQL = "DELETE FROM ADDRESSES WHERE ID IN (:ids)"
	CountAddressesSQL  = "SELECT COUNT(*) FROM ADDRESSES"

	InsertPersonSQL = "INSERT INTO PEOPLE (FIRST_NAME, LAST_NAME, DOB, SALARY, EMAIL, HOME_ADDRESS, BIZ_ADDRESS) VALUES(?, ?, ?, ?, ?, ?, ?)"
	UpdatePersonSQL = "UPDATE PEOPLE SET FIRST_NAME=?, LAST_NAME=?, DOB=?, SALARY=? WHERE ID=?"
	DeletePersonSQL = "DELETE FROM PEOPLE WHERE ID=?"
	DeletePeopleSQL = "DELETE FROM PEOPLE WHERE ID IN (:ids)"
	CountPeopleSQL  = "SELECT COUNT(*) FROM PEOPLE"
)

var (
	FindAllAddressesSQL = "SELECT " + strings.Join(addressColumns, ", ") + " FROM ADDRESSES ORDER BY ID"
	FindAddressByIDSQL  = "SELECT " + strings.Join(addressColumns, ", ") + " FROM ADDRESSES WHERE ID=?"

	// selectPeopleSQL joins ADDRESSES twice; home columns are labelled HOME_*,
	// business columns BIZ_*.
	selectPeopleSQL = "SELECT " +
		"P.ID AS ID, P.FIRST_NAME AS FIRST_NAME, P.LAST_NAME AS LAST_NAME, P.DOB AS DOB, P.SALARY AS SALARY, P.EMAIL AS EMAIL, " +
		aliasedColumns("HOME", homePrefix) + ", " +
		aliasedColumns("BIZ", bizPrefix) +
		" FROM PEOPLE AS P" +
		" LEFT OUTER JOIN ADDRESSES AS HOME ON P.HOME_ADDRESS = HOME.ID" +
		" LEFT OUTER JOIN ADDRESSES AS BIZ ON P.BIZ_ADDRESS = BIZ.ID"

	FindPersonByIDSQL = selectPeopleSQL + " WHERE P.ID=?"
	FindAllPeopleSQL  = selectPeopleSQL + " ORDER BY P.ID"
)

func aliasedColumns(table, prefix string) string {
	cols := make([]string, len(addressColumns))
	for i, c := range addressColumns {
		cols[i] = fmt.Sprintf("%s.%s AS %s%s", table, c, prefix, c)
	}
	return strings.Join(cols, ", ")
}

func addressSQL(returning bool) repository.SQL {
	insert := InsertAddressSQL
	if returning {
		insert += returningID
	}
	return repository.SQL{
		repository.Save:       insert,
		repository.Update:     UpdateAddressSQL,
		repository.DeleteOne:  DeleteAddressSQL,
		repository.DeleteMany: DeleteAddressesSQL,
		repository.FindByID:   FindAddressByIDSQL,
		repository.FindAll:    FindAllAddressesSQL,
		repository.Count:      CountAddressesSQL,
	}
}

func peopleSQL(returning bool) repository.SQL {
	insert := InsertPersonSQL
	if returning {
		insert += returningID
	}
	return repository.SQL{
		repository.Save:       insert,
		repository.Update:     UpdatePersonSQL,
		repository.DeleteOne:  DeletePersonSQL,
		repository.DeleteMany: DeletePeopleSQL,
		repository.FindByID:   FindPersonByIDSQL,
		repository.FindAll:    FindAllPeopleSQL,
		repository.Count:      CountPeopleSQL,
	}
}
