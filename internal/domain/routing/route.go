package routing

import "github.com/andrescamacho/spacetraders-go/internal/domain/location"

// Route is a derived (never persisted) trade opportunity pairing two
// locations for a single good, scored by psvd/cvd, per spec.md §3 and §4.3.
type Route struct {
	PurchaseLocation     string
	PurchaseLocationType location.Type
	SellLocation         string
	Good                 string
	Distance             float64
	PurchaseQuantity     int
	SellQuantity         int
	PurchasePricePerUnit int
	SellPricePerUnit     int
	VolumePerUnit        int
	FuelRequired         int
	FlightTime           int
	CVD                  float64
	PSVD                 float64
}
