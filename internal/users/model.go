// Package users defines the random user profile model and maps API
// responses onto it.
package users

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UserList is the result of one fetch. Results keep the server order.
type UserList struct {
	Results []UserRecord `json:"results" validate:"required,dive"`
	Info    Info         `json:"info"`
}

// Info echoes the request parameters the API used.
type Info struct {
	Seed    string `json:"seed" validate:"required"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version" validate:"required"`
}

// UserRecord is one generated profile.
type UserRecord struct {
	Gender     string     `json:"gender" validate:"required"`
	Name       Name       `json:"name"`
	Location   Location   `json:"location"`
	Email      string     `json:"email" validate:"required"`
	Login      Login      `json:"login"`
	Dob        DatedAge   `json:"dob"`
	Registered DatedAge   `json:"registered"`
	Phone      string     `json:"phone"`
	Cell       string     `json:"cell"`
	ID         Identifier `json:"id"`
	Picture    Picture    `json:"picture"`
	Nat        string     `json:"nat" validate:"required"`
}

type Name struct {
	Title string `json:"title"`
	First string `json:"first" validate:"required"`
	Last  string `json:"last" validate:"required"`
}

type Location struct {
	Street      Street      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Postcode    Postcode    `json:"postcode"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    Timezone    `json:"timezone"`
}

type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Timezone struct {
	Offset      string `json:"offset"`
	Description string `json:"description"`
}

// Login holds the generated credentials. The hashes are opaque strings and
// are never verified.
type Login struct {
	UUID     string `json:"uuid" validate:"required"`
	Username string `json:"username"`
	Password string `json:"password"`
	Salt     string `json:"salt"`
	MD5      string `json:"md5"`
	SHA1     string `json:"sha1"`
	SHA256   string `json:"sha256"`
}

// DatedAge is used for both date of birth and registration.
type DatedAge struct {
	Date string `json:"date"`
	Age  int    `json:"age"`
}

// Identifier is a national id. Both parts are null for some nationalities.
type Identifier struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

type Picture struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// Postcode accepts both the string and the numeric form the API emits
// depending on nationality.
type Postcode string

func (p *Postcode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Postcode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("postcode must be a string or a number: %w", err)
	}
	*p = Postcode(n.String())
	return nil
}

// UUID returns the stable identifier of the record (login.uuid).
func (u UserRecord) UUID() string {
	return u.Login.UUID
}

// FullName joins first and last name.
func (u UserRecord) FullName() string {
	return strings.TrimSpace(u.Name.First + " " + u.Name.Last)
}

// Identified reports whether the national id block carries a value.
func (u UserRecord) Identified() bool {
	return u.ID.Value != nil && *u.ID.Value != ""
}

func (u UserRecord) String() string {
	return "User: " + u.Name.Title + " " + u.Name.First + " " + u.Name.Last + ", " +
		"Email: " + u.Email + ", Phone: " + u.Phone + ", Cell: " + u.Cell + ", Nationality: " + u.Nat + ", " +
		"Location: " + u.Location.Street.Name + " " + strconv.Itoa(u.Location.Street.Number) + ", " +
		u.Location.City + ", " + u.Location.State + ", " + u.Location.Country
}

// Len returns the number of records.
func (l UserList) Len() int {
	return len(l.Results)
}
