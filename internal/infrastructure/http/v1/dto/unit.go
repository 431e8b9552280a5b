package dto

import (
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
)

// UnitConfigResponse describes one registry unit for clients building
// quantity inputs.
type UnitConfigResponse struct {
	Symbol           string  `json:"symbol"`
	Base             string  `json:"base"`
	Factor           float64 `json:"factor"`
	Kind             string  `json:"kind"`
	AllowsFractional bool    `json:"allowsFractional"`
	Step             float64 `json:"step"`
	MinIncrement     float64 `json:"minIncrement"`
}

// ValidateQuantityRequest checks a quantity against a unit's granularity.
type ValidateQuantityRequest struct {
	Unit     string  `json:"unit" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

// ValidateQuantityResponse carries the validation verdict.
type ValidateQuantityResponse struct {
	Valid        bool    `json:"valid"`
	Unit         string  `json:"unit"`
	MinIncrement float64 `json:"minIncrement,omitempty"`
	Message      string  `json:"message,omitempty"`
}

// FromUnitConfig converts a registry config.
func FromUnitConfig(cfg units.Config) UnitConfigResponse {
	return UnitConfigResponse{
		Symbol:           cfg.Symbol,
		Base:             cfg.Base,
		Factor:           cfg.Factor,
		Kind:             string(cfg.Kind),
		AllowsFractional: cfg.AllowsFractional(),
		Step:             cfg.Step(),
		MinIncrement:     cfg.MinIncrement(),
	}
}
