package sales

import (
	"math"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/types"
)

// VATRate is the flat value-added tax applied to the net amount.
// It is not user-editable.
const VATRate = 0.12

// NetAmount folds the amounts of all countable rows into a net total.
// Rows without a product or with a non-positive quantity are excluded;
// rows invalidated by granularity checks already carry a zero amount.
func NetAmount(rows []Row) float64 {
	var sum float64
	for _, r := range rows {
		if !r.Complete() {
			continue
		}
		sum += r.Amount
	}
	return types.Round2(sum)
}

// ComputeTotals derives VAT and the total due from a net amount and the
// header's fee and discount. DeliveryFee is ignored entirely while the
// sale is not marked for delivery, even if a stale value is still stored
// from a prior toggle. The total is clamped at zero: a discount larger
// than net+VAT+fee never produces a negative amount due.
func ComputeTotals(net, deliveryFee, discount float64, isForDelivery bool) Totals {
	vat := net * VATRate

	fee := deliveryFee
	if !isForDelivery {
		fee = 0
	}

	total := types.Round2(net + types.Round2(vat) + fee - discount)
	return Totals{
		NetAmount:      net,
		VAT:            vat,
		TotalAmountDue: math.Max(0, total),
	}
}
