package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/users"
)

// Fetch starts a cycle, shows the loading indicator and renders the outcome.
func (a *App) Fetch(ctx context.Context) error {
	n := a.pipeline.Fetch(ctx)
	renderState(a.out, pipeline.Loading{})

	st, err := a.pipeline.Await(ctx, n)
	if err != nil {
		a.logger.Error(ctx, "waiting for fetch", "cycle", n, "error", err)
		return err
	}
	renderState(a.out, st)
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, ok := a.loaded()
	if !ok {
		return nil
	}
	renderList(a.out, list)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	list, ok := a.loaded()
	if !ok {
		return nil
	}

	u, err := list.FindByID(id)
	switch {
	case errors.Is(err, users.ErrInvalidID):
		fmt.Fprintf(a.out, "Invalid user id %q\n", id)
		return err
	case err != nil:
		fmt.Fprintln(a.out, "User not found")
		return err
	}
	renderDetail(a.out, u)
	return nil
}

func (a *App) Find(ctx context.Context, arg string) error {
	list, ok := a.loaded()
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid street number %q\n", arg)
		return err
	}

	u, err := list.FindByStreetNumber(n)
	if err != nil {
		fmt.Fprintln(a.out, "User not found")
		return err
	}
	renderDetail(a.out, u)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.pipeline.State()
	switch s := st.(type) {
	case pipeline.Success:
		fmt.Fprintf(a.out, "status: %s (cycle %d, %d users)\n", s.Kind(), s.Cycle(), s.Users.Len())
	case pipeline.Failure:
		fmt.Fprintf(a.out, "status: %s (cycle %d): %s\n", s.Kind(), s.Cycle(), s.Message)
	default:
		fmt.Fprintf(a.out, "status: %s (cycle %d)\n", st.Kind(), st.Cycle())
	}
	return nil
}

// loaded returns the users of a successful state, or renders the current
// state and reports false.
func (a *App) loaded() (users.UserList, bool) {
	st := a.pipeline.State()
	if s, ok := st.(pipeline.Success); ok {
		return s.Users, true
	}
	renderState(a.out, st)
	return users.UserList{}, false
}
