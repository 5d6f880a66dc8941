package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"colonysim/internal/app/ports"
	"colonysim/internal/app/replay"
	"colonysim/internal/app/simulation"
	"colonysim/internal/app/status"
)

// DefaultMaxAdvance caps how many ticks one advance request may run.
const DefaultMaxAdvance = 1000

var ErrTooManyTicks = errors.New("too many ticks in one request")

// Colony is the write side of the simulation driver.
type Colony interface {
	Assign(ctx context.Context, colonistID string, kind simulation.Kind, p simulation.Params) (simulation.Assignment, error)
	Advance(ctx context.Context, n int) ([]simulation.TickResult, error)
	Kinds() []simulation.Spec
}

type Handler struct {
	Colony     Colony
	StatusUC   status.UseCase
	ReplayUC   replay.UseCase
	KPI        kpiSnapshotProvider
	MaxAdvance int
	// CORSOrigin is the browser origin allowed to call the API; empty means any.
	CORSOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(newCORSPolicy(h.CORSOrigin).middleware())

	api := s.Group("/api")
	api.GET("/colony", h.colony)
	api.GET("/activities", h.activities)
	api.GET("/colonists/:id", h.colonist)
	api.POST("/colonists/:id/assign", h.assign)
	api.GET("/colonists/:id/replay", h.replay)
	api.POST("/sim/advance", h.advance)

	s.GET("/ops/kpi", h.kpi)
}

type assignRequest struct {
	Kind string `json:"kind"`
	simulation.Params
}

type advanceRequest struct {
	Ticks int `json:"ticks"`
}

type advanceResponse struct {
	Ticks []simulation.TickResult `json:"ticks"`
	Last  simulation.TickResult   `json:"last"`
}

type activityKind struct {
	Kind        simulation.Kind `json:"kind"`
	Description string          `json:"description"`
}

func (h Handler) colony(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp.Colony)
}

func (h Handler) colonist(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{ColonistID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp.Colonist)
}

func (h Handler) activities(_ context.Context, ctx *app.RequestContext) {
	if h.Colony == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "colony not configured")
		return
	}
	specs := h.Colony.Kinds()
	out := make([]activityKind, 0, len(specs))
	for _, s := range specs {
		out = append(out, activityKind{Kind: s.Kind, Description: s.Description})
	}
	ctx.JSON(consts.StatusOK, map[string]any{"activities": out})
}

func (h Handler) assign(c context.Context, ctx *app.RequestContext) {
	if h.Colony == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "colony not configured")
		return
	}
	var body assignRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	kind := strings.TrimSpace(body.Kind)
	if kind == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "kind is required")
		return
	}
	resp, err := h.Colony.Assign(c, ctx.Param("id"), simulation.Kind(kind), body.Params)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	from, _ := strconv.ParseFloat(ctx.Query("from"), 64)
	to, _ := strconv.ParseFloat(ctx.Query("to"), 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		ColonistID:   ctx.Param("id"),
		Limit:        limit,
		FromMillisol: from,
		ToMillisol:   to,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) advance(c context.Context, ctx *app.RequestContext) {
	if h.Colony == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "colony not configured")
		return
	}
	body := advanceRequest{Ticks: 1}
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	limit := h.MaxAdvance
	if limit <= 0 {
		limit = DefaultMaxAdvance
	}
	if body.Ticks > limit {
		writeError(ctx, ErrTooManyTicks)
		return
	}
	results, err := h.Colony.Advance(c, body.Ticks)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp := advanceResponse{Ticks: results}
	if len(results) > 0 {
		resp.Last = results[len(results)-1]
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, simulation.ErrActivityInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "activity_in_progress", err.Error())
	case errors.Is(err, simulation.ErrUnknownActivity):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_activity", err.Error())
	case errors.Is(err, ErrTooManyTicks),
		errors.Is(err, simulation.ErrInvalidTicks),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ports.ErrUnavailable):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
