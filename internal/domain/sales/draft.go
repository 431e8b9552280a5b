package sales

import (
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/types"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
)

// ProductLookup supplies the product snapshot for a row. The snapshot's
// Quantity field is the available stock in base inventory units, assumed
// fresh at the moment the row references it.
type ProductLookup func(productID id.ID) (*product.Product, bool)

// Draft is one in-progress sale: a header plus an ordered collection of
// rows. All auxiliary state (granularity issues, the stock-exceed set) is
// keyed by the rows' stable identities, so removing a row never requires
// re-indexing. A draft belongs to a single session; every mutation
// recomputes the affected row, the totals and the tracker synchronously.
// Drafts are discarded wholesale on submit or cancel.
type Draft struct {
	calc    *Calculator
	lookup  ProductLookup
	header  Header
	rows    []Row
	issues  map[id.ID]*GranularityViolation
	tracker *StockExceedTracker
	totals  Totals
}

// NewDraft creates an empty draft with one blank row, matching how the
// sale form opens.
func NewDraft(calc *Calculator, lookup ProductLookup) *Draft {
	d := &Draft{
		calc:    calc,
		lookup:  lookup,
		header:  Header{Date: time.Now()},
		issues:  make(map[id.ID]*GranularityViolation),
		tracker: NewStockExceedTracker(),
	}
	d.AddRow()
	return d
}

// AddRow appends a blank row and returns its identity.
func (d *Draft) AddRow() id.ID {
	row := Row{ID: id.New()}
	d.rows = append(d.rows, row)
	return row.ID
}

// RemoveRow deletes a row. The row's product is cleared from the
// stock-exceed set unconditionally, and its validation state is dropped;
// state of the remaining rows is untouched because nothing is keyed by
// position.
func (d *Draft) RemoveRow(rowID id.ID) {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return
	}
	row := d.rows[idx]
	d.rows = append(d.rows[:idx], d.rows[idx+1:]...)
	delete(d.issues, rowID)
	if !id.IsNil(row.ProductID) {
		d.tracker.Remove(row.ProductID.String())
	}
	d.recomputeTotals()
}

// SetProduct selects a product for a row. Duplicate products across rows
// are rejected; the picker in the UI excludes them, and the tracker's
// keying depends on it. Selecting a product resets quantity and unit to
// the product's defaults.
func (d *Draft) SetProduct(rowID, productID id.ID) error {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return apperror.NewNotFound("sale row", rowID)
	}
	for _, r := range d.rows {
		if r.ID != rowID && r.ProductID == productID && !id.IsNil(productID) {
			return apperror.NewConflict("product already on another row").
				WithDetail("product_id", productID)
		}
	}

	prev := d.rows[idx].ProductID
	if !id.IsNil(prev) && prev != productID {
		d.tracker.Remove(prev.String())
	}

	d.rows[idx].ProductID = productID
	d.rows[idx].Quantity = 0
	d.rows[idx].Unit = ""
	d.recomputeRow(idx)
	return nil
}

// SetQuantity updates a row's entered quantity.
func (d *Draft) SetQuantity(rowID id.ID, qty float64) error {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return apperror.NewNotFound("sale row", rowID)
	}
	if qty < 0 {
		return apperror.NewValidation("quantity cannot be negative")
	}
	d.rows[idx].Quantity = qty
	d.recomputeRow(idx)
	return nil
}

// SetUnit switches a row to another selling unit of its product.
func (d *Draft) SetUnit(rowID id.ID, unit string) error {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return apperror.NewNotFound("sale row", rowID)
	}
	d.rows[idx].Unit = unit
	d.recomputeRow(idx)
	return nil
}

// SetHeader replaces the customer fields of the header. Fee and discount
// have dedicated setters because they only touch totals.
func (d *Draft) SetHeader(chargeTo, tin, address string, date time.Time) {
	d.header.ChargeTo = chargeTo
	d.header.TIN = tin
	d.header.Address = address
	d.header.Date = date
}

// SetForDelivery toggles delivery and recomputes the total. The stored
// delivery fee is kept; it simply stops counting while delivery is off.
func (d *Draft) SetForDelivery(forDelivery bool) {
	d.header.IsForDelivery = forDelivery
	d.recomputeTotals()
}

// SetDeliveryFee updates the delivery fee.
func (d *Draft) SetDeliveryFee(fee float64) error {
	if fee < 0 {
		return apperror.NewValidation("delivery fee cannot be negative")
	}
	d.header.DeliveryFee = fee
	d.recomputeTotals()
	return nil
}

// SetAdditionalDiscount updates the discount.
func (d *Draft) SetAdditionalDiscount(discount float64) error {
	if discount < 0 {
		return apperror.NewValidation("discount cannot be negative")
	}
	d.header.AdditionalDiscount = discount
	d.recomputeTotals()
	return nil
}

// Refresh recomputes every row against fresh product snapshots, e.g.
// after the product list is re-fetched.
func (d *Draft) Refresh() {
	for i := range d.rows {
		d.recomputeRow(i)
	}
}

// Rows returns the rows in order.
func (d *Draft) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Row returns a single row by identity.
func (d *Draft) Row(rowID id.ID) (Row, bool) {
	idx := d.indexOf(rowID)
	if idx < 0 {
		return Row{}, false
	}
	return d.rows[idx], true
}

// Header returns the current header.
func (d *Draft) Header() Header {
	return d.header
}

// Totals returns the current aggregates.
func (d *Draft) Totals() Totals {
	return d.totals
}

// Issue returns the granularity violation for a row, if any.
func (d *Draft) Issue(rowID id.ID) (*GranularityViolation, bool) {
	v, ok := d.issues[rowID]
	return v, ok
}

// StockExceeded returns the products currently over stock.
func (d *Draft) StockExceeded() []string {
	return d.tracker.Products()
}

// CanSubmit reports whether the draft is ready for persistence: at least
// one complete row, no granularity violations on complete rows, and no
// product over stock.
func (d *Draft) CanSubmit() bool {
	if d.tracker.Any() {
		return false
	}
	complete := 0
	for _, r := range d.rows {
		if !r.Complete() {
			continue
		}
		if _, bad := d.issues[r.ID]; bad {
			return false
		}
		complete++
	}
	return complete > 0
}

// BuildSubmission assembles the payload for the persistence layer,
// filtering out incomplete rows. VAT is rounded here; the engine keeps it
// unrounded internally.
func (d *Draft) BuildSubmission(branchID, userID id.ID) Submission {
	items := make([]SubmissionItem, 0, len(d.rows))
	for _, r := range d.rows {
		if !r.Complete() {
			continue
		}
		items = append(items, SubmissionItem{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			Unit:      r.Unit,
			UnitPrice: r.UnitPrice,
			Amount:    r.Amount,
		})
	}

	fee := d.header.DeliveryFee
	if !d.header.IsForDelivery {
		fee = 0
	}

	return Submission{
		Header: SubmissionHeader{
			ChargeTo:           d.header.ChargeTo,
			TIN:                d.header.TIN,
			Address:            d.header.Address,
			Date:               d.header.Date,
			BranchID:           branchID,
			UserID:             userID,
			VAT:                types.Round2(d.totals.VAT),
			AmountNetVAT:       d.totals.NetAmount,
			TotalAmountDue:     d.totals.TotalAmountDue,
			AdditionalDiscount: d.header.AdditionalDiscount,
			DeliveryFee:        fee,
			IsForDelivery:      d.header.IsForDelivery,
		},
		Items: items,
	}
}

func (d *Draft) indexOf(rowID id.ID) int {
	for i, r := range d.rows {
		if r.ID == rowID {
			return i
		}
	}
	return -1
}

func (d *Draft) recomputeRow(idx int) {
	row := d.rows[idx]

	var snapshot *product.Product
	if !id.IsNil(row.ProductID) {
		if p, ok := d.lookup(row.ProductID); ok {
			snapshot = p
		}
	}

	var stock float64
	if snapshot != nil {
		stock = snapshot.AvailableStock()
	}

	updated, violation, exceeded := d.calc.ComputeRow(row, snapshot, stock)
	d.rows[idx] = updated

	if violation != nil {
		d.issues[updated.ID] = violation
	} else {
		delete(d.issues, updated.ID)
	}
	if !id.IsNil(updated.ProductID) {
		d.tracker.Set(updated.ProductID.String(), exceeded)
	}

	d.recomputeTotals()
}

func (d *Draft) recomputeTotals() {
	net := NetAmount(d.rows)
	d.totals = ComputeTotals(net, d.header.DeliveryFee, d.header.AdditionalDiscount, d.header.IsForDelivery)
}
