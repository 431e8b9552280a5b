package sales

import "sort"

// StockExceedTracker maintains the set of products whose requested sale
// quantity currently exceeds available stock. Keys are product identities
// (stringified), not row positions: by construction no two rows of a
// draft reference the same product. The set is advisory; it gates final
// submission but never blocks computation.
type StockExceedTracker struct {
	exceeded map[string]struct{}
}

// NewStockExceedTracker creates an empty tracker.
func NewStockExceedTracker() *StockExceedTracker {
	return &StockExceedTracker{exceeded: make(map[string]struct{})}
}

// Set records or clears the exceeded state for a product.
func (t *StockExceedTracker) Set(productID string, exceeded bool) {
	if productID == "" {
		return
	}
	if exceeded {
		t.exceeded[productID] = struct{}{}
	} else {
		delete(t.exceeded, productID)
	}
}

// Remove clears a product unconditionally, used when its row is removed.
func (t *StockExceedTracker) Remove(productID string) {
	delete(t.exceeded, productID)
}

// Exceeded reports whether a product is currently over stock.
func (t *StockExceedTracker) Exceeded(productID string) bool {
	_, ok := t.exceeded[productID]
	return ok
}

// Any reports whether any product is over stock.
func (t *StockExceedTracker) Any() bool {
	return len(t.exceeded) > 0
}

// Products returns the sorted list of products over stock.
func (t *StockExceedTracker) Products() []string {
	out := make([]string, 0, len(t.exceeded))
	for p := range t.exceeded {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
