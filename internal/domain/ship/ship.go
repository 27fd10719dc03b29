package ship

import "fmt"

// Ship is the aggregate root for a single remote vessel. Location is absent
// exactly while a flight plan is active; Cargo (including the FUEL good) and
// SpaceAvailable are volatile, refreshed on every relevant transition.
//
// Ships on the remote server are authoritative for location and cargo; the
// local copy here is a cache the ShipMachine keeps in sync.
type Ship struct {
	id           string
	ownerUserID  int
	shipType     string
	class        string
	maxCargo     int
	speed        int
	manufacturer string
	plating      int
	weapons      int
	homeSystem   string
	location     *string
	cargo        *Cargo
}

// New constructs a validated Ship.
func New(
	id string,
	ownerUserID int,
	shipType, class string,
	maxCargo, speed int,
	manufacturer string,
	plating, weapons int,
	homeSystem string,
	location *string,
	cargo *Cargo,
) (*Ship, error) {
	if id == "" {
		return nil, fmt.Errorf("ship id cannot be empty")
	}
	if ownerUserID <= 0 {
		return nil, fmt.Errorf("ship owner_user_id must be positive")
	}
	if speed <= 0 {
		return nil, fmt.Errorf("ship speed must be positive")
	}
	if homeSystem == "" {
		return nil, fmt.Errorf("ship home_system cannot be empty")
	}
	if cargo == nil {
		var err error
		cargo, err = NewCargo(maxCargo, nil)
		if err != nil {
			return nil, err
		}
	}
	if cargo.Capacity() != maxCargo {
		return nil, fmt.Errorf("cargo capacity %d does not match max_cargo %d", cargo.Capacity(), maxCargo)
	}
	return &Ship{
		id:           id,
		ownerUserID:  ownerUserID,
		shipType:     shipType,
		class:        class,
		maxCargo:     maxCargo,
		speed:        speed,
		manufacturer: manufacturer,
		plating:      plating,
		weapons:      weapons,
		homeSystem:   homeSystem,
		location:     location,
		cargo:        cargo,
	}, nil
}

// Reconstruct rebuilds a Ship from persisted rows, bypassing no invariant
// (the same validation as New runs), mirroring the teacher's
// ReconstructShip factory used by repository Load paths.
func Reconstruct(
	id string,
	ownerUserID int,
	shipType, class string,
	maxCargo, speed int,
	manufacturer string,
	plating, weapons int,
	homeSystem string,
	location *string,
	cargo *Cargo,
) (*Ship, error) {
	return New(id, ownerUserID, shipType, class, maxCargo, speed, manufacturer, plating, weapons, homeSystem, location, cargo)
}

func (s *Ship) ID() string           { return s.id }
func (s *Ship) OwnerUserID() int     { return s.ownerUserID }
func (s *Ship) ShipType() string     { return s.shipType }
func (s *Ship) Class() string        { return s.class }
func (s *Ship) MaxCargo() int        { return s.maxCargo }
func (s *Ship) Speed() int           { return s.speed }
func (s *Ship) Manufacturer() string { return s.manufacturer }
func (s *Ship) Plating() int         { return s.plating }
func (s *Ship) Weapons() int         { return s.weapons }
func (s *Ship) HomeSystem() string   { return s.homeSystem }
func (s *Ship) Cargo() *Cargo        { return s.cargo }
func (s *Ship) SpaceAvailable() int  { return s.cargo.SpaceAvailable() }

// CurrentFuel grounds spec.md §4.4's current_fuel(ship) primitive.
func (s *Ship) CurrentFuel() int { return s.cargo.Fuel() }

// Location returns the current location symbol, or nil while in transit.
func (s *Ship) Location() *string { return s.location }

// IsInTransit reports whether the ship currently has no known location.
func (s *Ship) IsInTransit() bool { return s.location == nil }

// WithLocation returns a new Ship snapshot at the given location (nil to
// mark as in-transit), cargo unchanged.
func (s *Ship) WithLocation(location *string) *Ship {
	clone := *s
	clone.location = location
	return &clone
}

// WithCargo returns a new Ship snapshot carrying the given cargo.
func (s *Ship) WithCargo(cargo *Cargo) *Ship {
	clone := *s
	clone.cargo = cargo
	return &clone
}
