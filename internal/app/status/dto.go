package status

import "colonysim/internal/app/simulation"

type Request struct {
	// ColonistID narrows the response to one colonist; empty means the
	// whole colony.
	ColonistID string
}

type Response struct {
	Colony   *simulation.ColonyView   `json:"colony,omitempty"`
	Colonist *simulation.ColonistView `json:"colonist,omitempty"`
}
