package httpapi

import (
	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/users"
)

// StateView is the JSON form of a pipeline state, used by /api/v1/state
// and by the stream.
type StateView struct {
	Status string             `json:"status"`
	Cycle  uint64             `json:"cycle"`
	Error  string             `json:"error,omitempty"`
	Info   *users.Info        `json:"info,omitempty"`
	Users  []users.UserRecord `json:"users,omitempty"`
}

func NewStateView(st pipeline.State) StateView {
	v := StateView{Status: string(st.Kind()), Cycle: st.Cycle()}

	switch s := st.(type) {
	case pipeline.Success:
		info := s.Users.Info
		v.Info = &info
		v.Users = s.Users.Results
	case pipeline.Failure:
		v.Error = s.Message
	}
	return v
}

// UsersView is the body of a successful /api/v1/users response.
type UsersView struct {
	Status string             `json:"status"`
	Cycle  uint64             `json:"cycle"`
	Info   users.Info         `json:"info"`
	Users  []users.UserRecord `json:"users"`
}

// UserView is the body of a successful /api/v1/users/{id} response.
type UserView struct {
	Status string           `json:"status"`
	User   users.UserRecord `json:"user"`
}
