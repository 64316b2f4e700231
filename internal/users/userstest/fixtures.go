// Package userstest builds deterministic random-user payloads for tests.
package userstest

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/userfeed/internal/users"
)

// UUID returns the login uuid used for the i-th fixture record.
func UUID(i int) string {
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", i+1, i+1)
}

// StreetNumber returns the street number used for the i-th fixture record.
func StreetNumber(i int) int {
	return 100 + i
}

// Record builds the i-th fixture profile.
func Record(i int) users.UserRecord {
	idName, idValue := "SSN", fmt.Sprintf("000-00-%04d", i)
	return users.UserRecord{
		Gender: []string{"female", "male"}[i%2],
		Name:   users.Name{Title: "Ms", First: fmt.Sprintf("First%d", i), Last: fmt.Sprintf("Last%d", i)},
		Location: users.Location{
			Street:      users.Street{Number: StreetNumber(i), Name: "Main Street"},
			City:        "Springfield",
			State:       "Oregon",
			Country:     "United States",
			Postcode:    users.Postcode(fmt.Sprintf("%05d", 97400+i)),
			Coordinates: users.Coordinates{Latitude: "44.0462", Longitude: "-123.0220"},
			Timezone:    users.Timezone{Offset: "-8:00", Description: "Pacific Time (US & Canada)"},
		},
		Email: fmt.Sprintf("user%d@example.com", i),
		Login: users.Login{
			UUID:     UUID(i),
			Username: fmt.Sprintf("user%d", i),
			Password: "secret",
			Salt:     "salt",
			MD5:      "md5",
			SHA1:     "sha1",
			SHA256:   "sha256",
		},
		Dob:        users.DatedAge{Date: "1990-01-02T03:04:05.000Z", Age: 35},
		Registered: users.DatedAge{Date: "2015-06-07T08:09:10.000Z", Age: 10},
		Phone:      fmt.Sprintf("(555) 000-%04d", i),
		Cell:       fmt.Sprintf("(555) 111-%04d", i),
		ID:         users.Identifier{Name: &idName, Value: &idValue},
		Picture: users.Picture{
			Large:     fmt.Sprintf("https://randomuser.me/api/portraits/women/%d.jpg", i),
			Medium:    fmt.Sprintf("https://randomuser.me/api/portraits/med/women/%d.jpg", i),
			Thumbnail: fmt.Sprintf("https://randomuser.me/api/portraits/thumb/women/%d.jpg", i),
		},
		Nat: "US",
	}
}

// List builds a UserList with n fixture records.
func List(n int) users.UserList {
	l := users.UserList{
		Results: make([]users.UserRecord, 0, n),
		Info:    users.Info{Seed: "fixture", Results: n, Page: 1, Version: "1.4"},
	}
	for i := 0; i < n; i++ {
		l.Results = append(l.Results, Record(i))
	}
	return l
}

// Body returns List(n) encoded the way the API serves it.
func Body(n int) string {
	b, err := json.Marshal(List(n))
	if err != nil {
		panic(err)
	}
	return string(b)
}
