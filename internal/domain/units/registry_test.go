package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
)

func TestLookup(t *testing.T) {
	r := NewRegistry()

	kg, err := r.Lookup("kg")
	require.NoError(t, err)
	assert.Equal(t, "g", kg.Base)
	assert.Equal(t, float64(1000), kg.Factor)
	assert.Equal(t, KindWeight, kg.Kind)

	_, err = r.Lookup("furlong")
	require.Error(t, err)
	assert.True(t, apperror.IsUnknownUnit(err))
}

func TestCountUnitsAreIndivisible(t *testing.T) {
	r := NewRegistry()

	for _, c := range r.Configs() {
		if c.Kind == KindCount {
			assert.Equal(t, float64(1), c.Factor, "count unit %s must have factor 1", c.Symbol)
			assert.Error(t, r.ValidateQuantity(1.5, c.Symbol), "count unit %s must reject fractions", c.Symbol)
			assert.NoError(t, r.ValidateQuantity(3, c.Symbol))
		} else {
			assert.Greater(t, c.Factor, float64(1), "non-count unit %s must have factor > 1", c.Symbol)
		}
	}
}

func TestValidateQuantity_Granularity(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		qty    float64
		unit   string
		wantOK bool
	}{
		{"1.5 kg is 1500 g", 1.5, "kg", true},
		{"1.5005 kg is not integral grams", 1.5005, "kg", false},
		{"0.001 kg is exactly 1 g", 0.001, "kg", true},
		{"2.25 ltr is 2250 ml", 2.25, "ltr", true},
		{"fractional bd.ft on a twelfth", 1.25, "bd.ft", true},
		{"fractional bd.ft off grid", 1.3, "bd.ft", false},
		{"zero rejected", 0, "kg", false},
		{"negative rejected", -2, "pcs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateQuantity(tt.qty, tt.unit)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateQuantity_ViolationNamesIncrement(t *testing.T) {
	r := NewRegistry()

	err := r.ValidateQuantity(1.5005, "kg")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 0.001, appErr.Details["minIncrement"])
	assert.Contains(t, appErr.Message, "0.001 kg (1 g)")
}

func TestConfigConversions(t *testing.T) {
	r := NewRegistry()
	kg, err := r.Lookup("kg")
	require.NoError(t, err)

	assert.Equal(t, int64(1500), kg.ToBase(1.5))
	assert.Equal(t, 1.5, kg.ToDisplay(1500))
	assert.Equal(t, 0.001, kg.Step())
	assert.True(t, kg.AllowsFractional())
	assert.True(t, kg.QuantitiesEqual(1.5, 1.50000001))
	assert.False(t, kg.QuantitiesEqual(1.5, 1.501))

	pcs, err := r.Lookup("pcs")
	require.NoError(t, err)
	assert.Equal(t, float64(1), pcs.Step())
	assert.False(t, pcs.AllowsFractional())
}

func TestFormatQuantity(t *testing.T) {
	r := NewRegistry()
	kg, _ := r.Lookup("kg")
	pcs, _ := r.Lookup("pcs")

	assert.Equal(t, "1.5", kg.FormatQuantity(1.5))
	assert.Equal(t, "2", kg.FormatQuantity(2.0))
	assert.Equal(t, "3", pcs.FormatQuantity(3.2))
}

func TestMinimumDescription(t *testing.T) {
	r := NewRegistry()
	kg, _ := r.Lookup("kg")
	pcs, _ := r.Lookup("pcs")

	assert.Equal(t, "0.001 kg (1 g)", kg.MinimumDescription())
	assert.Equal(t, "1 pcs", pcs.MinimumDescription())
}

func TestRegistryOverride(t *testing.T) {
	r := NewRegistry(Config{Symbol: "box", Base: "box", Factor: 1, Kind: KindCount})

	box, err := r.Lookup("box")
	require.NoError(t, err)
	assert.Equal(t, KindCount, box.Kind)
	assert.Contains(t, r.Symbols(), "box")
}
