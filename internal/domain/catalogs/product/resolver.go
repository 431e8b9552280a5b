package product

import (
	"sort"
	"strings"
)

// Resolve produces the canonical ordered list of sellable unit
// configurations for a product: the base entry first, remaining entries in
// lexicographic unit order.
//
// Malformed entries (blank unit, non-positive price or base ratio) are
// dropped silently; partially migrated legacy records must keep selling
// through whatever entries remain. When no structured entry survives, a
// single base entry is synthesized from the legacy scalar unit/price
// fields if those are usable. An empty result means the product is not
// sellable; Resolve never fails.
func Resolve(p *Product) []SellingUnit {
	if p == nil {
		return nil
	}

	out := make([]SellingUnit, 0, len(p.SellingUnits))
	for _, su := range p.SellingUnits {
		unit := strings.TrimSpace(su.Unit)
		if unit == "" || su.UnitPrice <= 0 || su.BaseQuantityPerSellUnit <= 0 {
			continue
		}
		su.Unit = unit
		out = append(out, su)
	}

	sortBaseFirst(out)

	if len(out) > 0 {
		return out
	}

	// Legacy fallback: a single-unit product defined by scalar fields.
	unit := strings.TrimSpace(p.Unit)
	if unit != "" && p.UnitPrice > 0 {
		return []SellingUnit{{
			Unit:                    unit,
			UnitPrice:               p.UnitPrice,
			BaseQuantityPerSellUnit: 1,
			IsBase:                  true,
		}}
	}

	return []SellingUnit{}
}

// BaseEntry returns the base selling unit from a resolved list, falling
// back to the first entry when none is marked base. The second return is
// false for an empty list.
func BaseEntry(resolved []SellingUnit) (SellingUnit, bool) {
	for _, su := range resolved {
		if su.IsBase {
			return su, true
		}
	}
	if len(resolved) > 0 {
		return resolved[0], true
	}
	return SellingUnit{}, false
}

// FindUnit returns the entry for a unit symbol within a resolved list.
func FindUnit(resolved []SellingUnit, unit string) (SellingUnit, bool) {
	unit = strings.TrimSpace(unit)
	for _, su := range resolved {
		if su.Unit == unit {
			return su, true
		}
	}
	return SellingUnit{}, false
}

// SyncWithBase rebuilds a selling-unit list after an administrator edits
// the product's base unit or price. The base entry is forced to
// {baseUnit, basePrice, ratio 1} at the head of the list; non-base entries
// colliding with the new base unit are dropped; duplicate non-base units
// are collapsed keeping the first occurrence. Entries with a blank unit
// are in-progress edits and are preserved as trailing placeholders. An
// empty baseUnit yields only the non-base entries.
func SyncWithBase(entries []SellingUnit, baseUnit string, basePrice float64) []SellingUnit {
	baseUnit = strings.TrimSpace(baseUnit)

	seen := make(map[string]bool)
	var others []SellingUnit
	var placeholders []SellingUnit

	for _, su := range entries {
		if su.IsBase {
			continue
		}
		unit := strings.TrimSpace(su.Unit)
		if unit == "" {
			placeholders = append(placeholders, su)
			continue
		}
		if unit == baseUnit || seen[unit] {
			continue
		}
		seen[unit] = true
		su.Unit = unit
		others = append(others, su)
	}

	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Unit < others[j].Unit
	})

	var out []SellingUnit
	if baseUnit != "" {
		out = append(out, SellingUnit{
			Unit:                    baseUnit,
			UnitPrice:               basePrice,
			BaseQuantityPerSellUnit: 1,
			IsBase:                  true,
		})
	}
	out = append(out, others...)
	out = append(out, placeholders...)
	return out
}

// sortBaseFirst orders a selling-unit list with the base entry first and
// the remainder alphabetically by unit.
func sortBaseFirst(entries []SellingUnit) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsBase != entries[j].IsBase {
			return entries[i].IsBase
		}
		return entries[i].Unit < entries[j].Unit
	})
}
