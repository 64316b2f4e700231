package users

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FindByID returns the record whose login uuid equals id. Case and the
// surrounding whitespace are ignored.
func (l UserList) FindByID(id string) (UserRecord, error) {
	want, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return UserRecord{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	for _, u := range l.Results {
		got, err := uuid.Parse(u.Login.UUID)
		if err != nil {
			continue
		}
		if got == want {
			return u, nil
		}
	}
	return UserRecord{}, ErrNotFound
}

// FindByStreetNumber returns the first record living at the given street
// number. Street numbers are not unique in real data; prefer FindByID.
func (l UserList) FindByStreetNumber(n int) (UserRecord, error) {
	for _, u := range l.Results {
		if u.Location.Street.Number == n {
			return u, nil
		}
	}
	return UserRecord{}, ErrNotFound
}
