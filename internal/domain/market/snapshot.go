package market

import (
	"fmt"
	"time"
)

// Snapshot is an immutable, append-only market observation for one good at
// one location, grounded on spec.md §3's MarketSnapshot entity and the
// teacher's append-only MarketPriceHistoryModel (as opposed to its
// upserted, current-state MarketData table, which is the wrong persistence
// shape for this entity — see DESIGN.md).
type Snapshot struct {
	LocationSymbol       string
	Good                 string
	PricePerUnit         int
	PurchasePricePerUnit int
	SellPricePerUnit     int
	VolumePerUnit        int
	QuantityAvailable    int
	CreatedAt            time.Time
}

// New validates and constructs a Snapshot.
func New(locationSymbol, good string, pricePerUnit, purchasePricePerUnit, sellPricePerUnit, volumePerUnit, quantityAvailable int, createdAt time.Time) (*Snapshot, error) {
	if locationSymbol == "" {
		return nil, fmt.Errorf("location symbol cannot be empty")
	}
	if good == "" {
		return nil, fmt.Errorf("good symbol cannot be empty")
	}
	if volumePerUnit <= 0 {
		return nil, fmt.Errorf("volume_per_unit must be positive")
	}
	if createdAt.IsZero() {
		return nil, fmt.Errorf("created_at cannot be zero")
	}
	return &Snapshot{
		LocationSymbol:       locationSymbol,
		Good:                 good,
		PricePerUnit:         pricePerUnit,
		PurchasePricePerUnit: purchasePricePerUnit,
		SellPricePerUnit:     sellPricePerUnit,
		VolumePerUnit:        volumePerUnit,
		QuantityAvailable:    quantityAvailable,
		CreatedAt:            createdAt,
	}, nil
}

// Key identifies the (location, good) pair this snapshot observes — the
// grouping key used to find the "latest per (location, good)" per spec.md §3.
type Key struct {
	LocationSymbol string
	Good           string
}

func (s *Snapshot) Key() Key {
	return Key{LocationSymbol: s.LocationSymbol, Good: s.Good}
}

// Latest reduces a set of snapshots to the most recent one per (location,
// good), the "latest per (location,good) = max created_at" rule spec.md §3
// mandates.
func Latest(snapshots []*Snapshot) map[Key]*Snapshot {
	out := make(map[Key]*Snapshot, len(snapshots))
	for _, s := range snapshots {
		key := s.Key()
		existing, ok := out[key]
		if !ok || s.CreatedAt.After(existing.CreatedAt) {
			out[key] = s
		}
	}
	return out
}
