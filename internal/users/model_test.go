package users_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userfeed/internal/users"
	"github.com/dmitrijs2005/userfeed/internal/users/userstest"
)

func TestUserRecord_String(t *testing.T) {
	u := userstest.Record(3)

	want := "User: Ms First3 Last3, Email: user3@example.com, Phone: (555) 000-0003, Cell: (555) 111-0003, " +
		"Nationality: US, Location: Main Street 103, Springfield, Oregon, United States"
	assert.Equal(t, want, u.String())
}

func TestUserRecord_Accessors(t *testing.T) {
	u := userstest.Record(0)

	assert.Equal(t, userstest.UUID(0), u.UUID())
	assert.Equal(t, "First0 Last0", u.FullName())
	assert.True(t, u.Identified())

	u.ID = users.Identifier{}
	assert.False(t, u.Identified())
}

func TestPostcode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    users.Postcode
		wantErr bool
	}{
		{in: `"SW1A 1AA"`, want: "SW1A 1AA"},
		{in: `90210`, want: "90210"},
		{in: `"0123"`, want: "0123"},
		{in: `null`, want: ""},
		{in: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		var p users.Postcode
		err := json.Unmarshal([]byte(tt.in), &p)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, p)
	}
}
