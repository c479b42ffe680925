package domain

// PriceMatrixEntry is an immutable contract rate keyed by route, truck type
// and subcontractor. The table is owned by a separate pricing-administration
// process; the core only ever reads snapshots of it.
type PriceMatrixEntry struct {
	Origin           string
	Destination      string
	TruckType        string
	Subcontractor    string
	BasePrice        float64
	SellingBasePrice float64
	DropOffFee       float64
}
