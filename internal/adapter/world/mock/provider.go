// Package mock provides fixed outdoor conditions for tests and local runs.
package mock

import "colonysim/internal/domain/eva"

type Provider struct {
	Conditions eva.Conditions
}

func Daylight() *Provider {
	return &Provider{Conditions: eva.Conditions{Daylight: true}}
}

func (p *Provider) ConditionsAt(float64) eva.Conditions { return p.Conditions }
