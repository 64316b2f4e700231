package pipeline

import "github.com/dmitrijs2005/userfeed/internal/users"

// Kind names a State variant.
type Kind string

const (
	KindIdle    Kind = "idle"
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// State is the value published by a Pipeline. It is one of Idle, Loading,
// Success or Failure; use a type switch to reach the payload.
type State interface {
	Kind() Kind
	// Cycle is the fetch cycle that produced the state; 0 for Idle.
	Cycle() uint64
	// Terminal reports whether the cycle is finished.
	Terminal() bool

	sealed()
}

type cycle struct {
	n uint64
}

func (c cycle) Cycle() uint64 { return c.n }
func (cycle) sealed()         {}

// Idle is the state before the first fetch.
type Idle struct {
	cycle
}

func (Idle) Kind() Kind     { return KindIdle }
func (Idle) Terminal() bool { return false }

// Loading is published as soon as a cycle starts.
type Loading struct {
	cycle
}

func (Loading) Kind() Kind     { return KindLoading }
func (Loading) Terminal() bool { return false }

// Success carries the decoded user list.
type Success struct {
	cycle
	Users users.UserList
}

func (Success) Kind() Kind     { return KindSuccess }
func (Success) Terminal() bool { return true }

// Failure carries the message shown to users. Err keeps the typed cause:
// *randomuser.NetworkFailure, *StatusFailure or *users.DecodeFailure.
type Failure struct {
	cycle
	Message string
	Err     error
}

func (Failure) Kind() Kind     { return KindError }
func (Failure) Terminal() bool { return true }
