package routing

import (
	"math"
	"sort"
	"time"

	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
)

// MaxSnapshotAge bounds how stale a MarketSnapshot may be and still feed the
// route computation, per spec.md §4.3 step 1.
const MaxSnapshotAge = 30 * time.Minute

// Engine computes ranked trade routes from the latest market snapshots for
// a given origin and ship speed. It is a stateless domain service with no
// infrastructure dependencies, grounded on the teacher's
// domain/trading.ArbitrageAnalyzer shape — load filters then score, rather
// than the teacher's own supply/activity filters, which spec.md §4.3 does
// not call for.
type Engine struct{}

// NewEngine constructs a RouteEngine.
func NewEngine() *Engine { return &Engine{} }

// ComputeRoutes implements spec.md §4.3's algorithm exactly, including the
// degenerate flight_time formula (preserved per spec.md §9's explicit
// instruction — do not "fix" the inner round()).
//
// locations must contain every Location the snapshots reference; snapshots
// may span multiple systems, only those in origin's system are considered.
func (e *Engine) ComputeRoutes(origin location.Location, locations map[string]location.Location, snapshots []*market.Snapshot, speed int, now time.Time) []Route {
	latest := market.Latest(snapshots)

	// Step 1: build L — latest snapshot per (location, good), same system
	// as origin, no older than MaxSnapshotAge.
	type locatedSnapshot struct {
		loc location.Location
		snp *market.Snapshot
	}
	perLocation := make(map[string][]locatedSnapshot)
	for key, snp := range latest {
		loc, ok := locations[key.LocationSymbol]
		if !ok {
			continue
		}
		if loc.SystemSymbol != origin.SystemSymbol {
			continue
		}
		if now.Sub(snp.CreatedAt) > MaxSnapshotAge {
			continue
		}
		perLocation[key.LocationSymbol] = append(perLocation[key.LocationSymbol], locatedSnapshot{loc: loc, snp: snp})
	}

	var routes []Route

	for aSymbol, aSnapshots := range perLocation {
		for bSymbol, bSnapshots := range perLocation {
			if aSymbol == bSymbol {
				continue
			}
			for _, a := range aSnapshots {
				for _, b := range bSnapshots {
					if a.snp.Good != b.snp.Good {
						continue
					}

					distance := a.loc.DistanceTo(b.loc)
					fuelRequired := int(math.Round(math.Round(distance)/4)) + planetSurcharge(a.loc) + 1
					flightTime := distance*math.Round(2/float64(speed)) + 60

					profit := float64(b.snp.SellPricePerUnit - a.snp.PurchasePricePerUnit)
					volume := float64(a.snp.VolumePerUnit)
					if volume == 0 {
						volume = 1
					}
					var cvd, psvd float64
					if distance == 0 {
						cvd = profit / volume
						psvd = profit * float64(speed) / volume
					} else {
						cvd = profit / volume / distance
						psvd = profit * float64(speed) / (volume * distance)
					}

					routes = append(routes, Route{
						PurchaseLocation:     aSymbol,
						PurchaseLocationType: a.loc.Type,
						SellLocation:         bSymbol,
						Good:                 a.snp.Good,
						Distance:             distance,
						PurchaseQuantity:     a.snp.QuantityAvailable,
						SellQuantity:         b.snp.QuantityAvailable,
						PurchasePricePerUnit: a.snp.PurchasePricePerUnit,
						SellPricePerUnit:     b.snp.SellPricePerUnit,
						VolumePerUnit:        a.snp.VolumePerUnit,
						FuelRequired:         fuelRequired,
						FlightTime:           int(flightTime),
						CVD:                  cvd,
						PSVD:                 psvd,
					})
				}
			}
		}
	}

	// Step 3: sort by psvd descending; NaN treated as equal for stability
	// (sort.SliceStable never reorders equal elements).
	sort.SliceStable(routes, func(i, j int) bool {
		pi, pj := routes[i].PSVD, routes[j].PSVD
		if math.IsNaN(pi) || math.IsNaN(pj) {
			return false
		}
		return pi > pj
	})

	return routes
}

func planetSurcharge(l location.Location) int {
	if l.Type == location.TypePlanet {
		return 2
	}
	return 0
}

// The excluded sink is a policy input, not a constant, per spec.md §9 — the
// Trader state machine passes it to SelectForTrader rather than this package
// hard-coding it. The excluded scout system is held by the supervisor and is
// not an input of this package.

// DefaultMinPurchaseQuantity is the supervisor's default minPurchaseQuantity
// policy value, rejecting routes whose origin market can't supply a
// meaningfully large purchase.
const DefaultMinPurchaseQuantity = 500

// SelectForTrader implements spec.md §4.3's Trader selection policy: the
// first Route satisfying all of sellLocation != excludedSink,
// purchaseQuantity > minPurchaseQuantity, and psvd > 0.
func SelectForTrader(routes []Route, excludedSink string, minPurchaseQuantity int) (*Route, bool) {
	for i := range routes {
		r := &routes[i]
		if r.SellLocation == excludedSink {
			continue
		}
		if r.PurchaseQuantity <= minPurchaseQuantity {
			continue
		}
		if r.PSVD <= 0 {
			continue
		}
		return r, true
	}
	return nil, false
}
