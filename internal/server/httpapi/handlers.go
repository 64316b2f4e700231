package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/server/httpapi/response"
	"github.com/dmitrijs2005/userfeed/internal/users"
)

// Pipeline is the part of *pipeline.Pipeline the handlers use.
type Pipeline interface {
	State() pipeline.State
	Fetch(ctx context.Context) uint64
	Subscribe() *pipeline.Subscription
}

// Handler serves the user feed API on top of a pipeline.
type Handler struct {
	pipeline Pipeline
	logger   logging.Logger
	stream   StreamConfig
}

func NewHandler(p Pipeline, l logging.Logger, stream StreamConfig) *Handler {
	return &Handler{pipeline: p, logger: l, stream: stream}
}

func (h *Handler) log(r *http.Request, op string) logging.Logger {
	return h.logger.With("op", op, "request_id", middleware.GetReqID(r.Context()))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OK())
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, NewStateView(h.pipeline.State()))
}

func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	n := h.pipeline.Fetch(r.Context())
	h.log(r, "handlers.fetch").Info(r.Context(), "fetch triggered", "cycle", n)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, response.AcceptedCycle(n))
}

func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loaded(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, UsersView{
		Status: response.StatusOK,
		Cycle:  s.Cycle(),
		Info:   s.Users.Info,
		Users:  s.Users.Results,
	})
}

func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loaded(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	u, err := s.Users.FindByID(id)
	switch {
	case errors.Is(err, users.ErrInvalidID):
		h.log(r, "handlers.user").Warn(r.Context(), "invalid user id", "id", id)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	case err != nil:
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(users.ErrNotFound.Error()))
		return
	}

	render.JSON(w, r, UserView{Status: response.StatusOK, User: u})
}

// loaded writes a 409 unless the current state is a success.
func (h *Handler) loaded(w http.ResponseWriter, r *http.Request) (pipeline.Success, bool) {
	st := h.pipeline.State()
	if s, ok := st.(pipeline.Success); ok {
		return s, true
	}

	msg := "users not loaded"
	switch s := st.(type) {
	case pipeline.Loading:
		msg = "fetch in progress"
	case pipeline.Failure:
		msg = s.Message
	}
	render.Status(r, http.StatusConflict)
	render.JSON(w, r, response.Error(msg))
	return pipeline.Success{}, false
}
