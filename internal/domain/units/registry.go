// Package units provides the measurement unit registry.
// It is the single source of truth for quantity granularity and the
// conversion from display units to the base inventory units stock is
// tracked in.
package units

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
)

// Kind defines the measurement category of a unit.
type Kind string

const (
	KindWeight Kind = "weight" // kg → g
	KindVolume Kind = "volume" // ltr → ml
	KindLength Kind = "length" // m → cm
	KindCount  Kind = "count"  // pcs, bag, ...
)

// granularityTolerance is the slack allowed when checking that a quantity
// converts to a whole number of base units. Matches the validation done by
// the client before submission.
const granularityTolerance = 1e-4

// Config describes one sellable unit: the base unit it converts to, the
// conversion factor, and its measurement kind.
// Invariant: Factor == 1 exactly when Kind == KindCount; count units are
// indivisible.
type Config struct {
	Symbol string `json:"symbol"`
	Base   string `json:"base"`
	Factor float64 `json:"factor"`
	Kind   Kind   `json:"kind"`
}

// AllowsFractional reports whether fractional quantities are meaningful
// for this unit.
func (c Config) AllowsFractional() bool {
	return c.Factor > 1
}

// Step returns the smallest increment accepted for quantity input.
func (c Config) Step() float64 {
	if c.Factor <= 1 {
		return 1
	}
	return 1 / c.Factor
}

// MinIncrement is an alias for Step kept for readability at call sites
// reporting granularity violations.
func (c Config) MinIncrement() float64 {
	return c.Step()
}

// IsIntegralBase reports whether qty converts to a whole number of base
// units within tolerance.
func (c Config) IsIntegralBase(qty float64) bool {
	base := qty * c.Factor
	return math.Abs(base-math.Round(base)) < granularityTolerance
}

// ToBase converts a display quantity to base units, rounded to the nearest
// whole base unit.
func (c Config) ToBase(qty float64) int64 {
	return int64(math.Round(qty * c.Factor))
}

// ToDisplay converts a base quantity back to the display unit.
func (c Config) ToDisplay(base float64) float64 {
	return base / c.Factor
}

// FormatQuantity renders a quantity with the precision the unit supports,
// trimming trailing zeros.
func (c Config) FormatQuantity(qty float64) string {
	if c.Factor <= 1 {
		return strconv.FormatInt(int64(math.Round(qty)), 10)
	}
	precision := 0
	for f := c.Factor; f > 1; f = math.Floor(f / 10) {
		precision++
	}
	s := strconv.FormatFloat(qty, 'f', precision, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// MinimumDescription describes the smallest valid quantity, e.g.
// "0.001 kg (1 g)" or "1 pcs".
func (c Config) MinimumDescription() string {
	if c.Factor <= 1 {
		return fmt.Sprintf("1 %s", c.Symbol)
	}
	return fmt.Sprintf("%s %s (1 %s)", strconv.FormatFloat(1/c.Factor, 'f', -1, 64), c.Symbol, c.Base)
}

// QuantitiesEqual reports whether two quantities are equal once both are
// expressed in whole base units.
func (c Config) QuantitiesEqual(a, b float64) bool {
	return c.ToBase(a) == c.ToBase(b)
}

// Registry maps unit symbols to their configuration. The table is fixed at
// construction; all lookups are read-only and safe for concurrent use.
type Registry struct {
	units map[string]Config
}

// defaultConfigs mirrors the Unit_Conversion table the storefront ships with.
func defaultConfigs() []Config {
	return []Config{
		{Symbol: "kg", Base: "g", Factor: 1000, Kind: KindWeight},
		{Symbol: "ltr", Base: "ml", Factor: 1000, Kind: KindVolume},
		{Symbol: "gal", Base: "ml", Factor: 3785, Kind: KindVolume},
		{Symbol: "m", Base: "cm", Factor: 100, Kind: KindLength},
		{Symbol: "meter", Base: "cm", Factor: 100, Kind: KindLength},
		{Symbol: "cu.m", Base: "cu.cm", Factor: 1000000, Kind: KindVolume},
		{Symbol: "bd.ft", Base: "bd.in", Factor: 12, Kind: KindLength},
		{Symbol: "pcs", Base: "pcs", Factor: 1, Kind: KindCount},
		{Symbol: "bag", Base: "bag", Factor: 1, Kind: KindCount},
		{Symbol: "pairs", Base: "pairs", Factor: 1, Kind: KindCount},
		{Symbol: "roll", Base: "roll", Factor: 1, Kind: KindCount},
		{Symbol: "set", Base: "set", Factor: 1, Kind: KindCount},
		{Symbol: "sheet", Base: "sheet", Factor: 1, Kind: KindCount},
		{Symbol: "btl", Base: "btl", Factor: 1, Kind: KindCount},
		{Symbol: "can", Base: "can", Factor: 1, Kind: KindCount},
		{Symbol: "pail", Base: "pail", Factor: 1, Kind: KindCount},
	}
}

// NewRegistry builds a registry with the default unit table plus any
// extra configurations. Later entries override earlier ones by symbol.
func NewRegistry(extra ...Config) *Registry {
	configs := append(defaultConfigs(), extra...)
	units := make(map[string]Config, len(configs))
	for _, c := range configs {
		units[c.Symbol] = c
	}
	return &Registry{units: units}
}

// Lookup returns the configuration for a unit symbol.
// Returns an UNKNOWN_UNIT error for symbols outside the table; callers
// handling free-form legacy units must treat that as "skip validation",
// not as a failure.
func (r *Registry) Lookup(symbol string) (Config, error) {
	c, ok := r.units[symbol]
	if !ok {
		return Config{}, apperror.NewUnknownUnit(symbol)
	}
	return c, nil
}

// Symbols returns all configured unit symbols in lexicographic order.
func (r *Registry) Symbols() []string {
	out := make([]string, 0, len(r.units))
	for s := range r.units {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Configs returns all configurations ordered by symbol.
func (r *Registry) Configs() []Config {
	symbols := r.Symbols()
	out := make([]Config, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, r.units[s])
	}
	return out
}

// ValidateQuantity checks a quantity against the unit's granularity rules.
// Returns a validation AppError naming the minimal legal increment when the
// quantity does not convert to a whole number of base units, an
// UNKNOWN_UNIT error for unconfigured symbols, and nil otherwise.
func (r *Registry) ValidateQuantity(qty float64, symbol string) error {
	c, err := r.Lookup(symbol)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return apperror.NewValidation("quantity must be greater than 0").
			WithDetail("unit", symbol)
	}
	if !c.IsIntegralBase(qty) {
		return apperror.NewValidation(
			fmt.Sprintf("quantity must be in multiples of %s", c.MinimumDescription())).
			WithDetail("unit", symbol).
			WithDetail("minIncrement", c.MinIncrement())
	}
	return nil
}
