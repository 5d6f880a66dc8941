package status

import (
	"context"
	"errors"
	"strings"

	"colonysim/internal/app/simulation"
)

var ErrInvalidRequest = errors.New("invalid status request")

type ColonyReader interface {
	Snapshot() simulation.ColonyView
	Colonist(id string) (simulation.ColonistView, error)
}

type UseCase struct {
	Colony ColonyReader
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	if u.Colony == nil {
		return Response{}, ErrInvalidRequest
	}
	if req.ColonistID == "" {
		v := u.Colony.Snapshot()
		return Response{Colony: &v}, nil
	}
	if strings.TrimSpace(req.ColonistID) == "" {
		return Response{}, ErrInvalidRequest
	}
	c, err := u.Colony.Colonist(req.ColonistID)
	if err != nil {
		return Response{}, err
	}
	return Response{Colonist: &c}, nil
}
