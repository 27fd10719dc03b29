package persistence

import "time"

// UserModel represents the users table. Credits and loans are NOT persisted
// columns — like the teacher's PlayerModel, they're always fetched fresh
// from the remote API and only ever snapshotted into UserStatsModel.
type UserModel struct {
	ID                int       `gorm:"column:id;primaryKey;autoIncrement"`
	Username          string    `gorm:"column:username;unique;not null"`
	Token             string    `gorm:"column:token;not null"`
	SystemSymbol      string    `gorm:"column:system_symbol;not null"`
	DefaultAssignment string    `gorm:"column:default_assignment;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// LocationModel represents the locations table, grounded on the teacher's
// WaypointModel trimmed to the fields spec.md §3's Location entity names.
type LocationModel struct {
	LocationSymbol string  `gorm:"column:location_symbol;primaryKey"`
	SystemSymbol   string  `gorm:"column:system_symbol;not null;index"`
	Type           string  `gorm:"column:type;not null"`
	X              float64 `gorm:"column:x;not null"`
	Y              float64 `gorm:"column:y;not null"`
	Name           string  `gorm:"column:name"`
}

func (LocationModel) TableName() string { return "locations" }

// ShipModel caches ship ownership and static attributes (renamed from the
// teacher's ship_assignments concept — there is no container assignment in
// this system, ships belong directly to a user and a ShipMachine).
type ShipModel struct {
	ShipSymbol   string `gorm:"column:ship_symbol;primaryKey;not null"`
	UserID       int    `gorm:"column:user_id;primaryKey;not null"`
	ShipType     string `gorm:"column:ship_type;not null"`
	Class        string `gorm:"column:class;not null"`
	MaxCargo     int    `gorm:"column:max_cargo;not null"`
	Speed        int    `gorm:"column:speed;not null"`
	Manufacturer string `gorm:"column:manufacturer"`
	Plating      int    `gorm:"column:plating"`
	Weapons      int    `gorm:"column:weapons"`
	HomeSystem   string `gorm:"column:home_system;not null"`
}

func (ShipModel) TableName() string { return "ships" }

// FlightPlanModel represents the flight_plans table. Append-only, grounded
// on the teacher's ContainerLogModel event-log style rather than its
// mutable navigation Route.
type FlightPlanModel struct {
	ID                   string    `gorm:"column:id;primaryKey;not null"`
	UserID               int       `gorm:"column:user_id;not null;index:idx_flight_plans_ship"`
	ShipID               string    `gorm:"column:ship_id;not null;index:idx_flight_plans_ship"`
	Origin               string    `gorm:"column:origin;not null"`
	Destination          string    `gorm:"column:destination;not null"`
	Distance             float64   `gorm:"column:distance;not null"`
	FuelConsumed         int       `gorm:"column:fuel_consumed;not null"`
	FuelRemaining        int       `gorm:"column:fuel_remaining;not null"`
	TimeRemainingSeconds int       `gorm:"column:time_remaining_s;not null"`
	ArrivesAt            time.Time `gorm:"column:arrives_at;not null;index:idx_flight_plans_active"`
	CreatedAt            time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (FlightPlanModel) TableName() string { return "flight_plans" }

// MarketSnapshotModel represents the market_snapshots table, grounded on the
// teacher's MarketPriceHistoryModel (append-only, not the upserted
// MarketData current-state cache — see SPEC_FULL.md §5).
type MarketSnapshotModel struct {
	ID                   int       `gorm:"column:id;primaryKey;autoIncrement"`
	LocationSymbol       string    `gorm:"column:location_symbol;not null;index:idx_market_snapshots_loc_good_time"`
	Good                 string    `gorm:"column:good;not null;index:idx_market_snapshots_loc_good_time"`
	PricePerUnit         int       `gorm:"column:price_per_unit;not null"`
	PurchasePricePerUnit int       `gorm:"column:purchase_price_per_unit;not null"`
	SellPricePerUnit     int       `gorm:"column:sell_price_per_unit;not null"`
	VolumePerUnit        int       `gorm:"column:volume_per_unit;not null"`
	QuantityAvailable    int       `gorm:"column:quantity_available;not null"`
	CreatedAt            time.Time `gorm:"column:created_at;not null;index:idx_market_snapshots_loc_good_time,idx_market_snapshots_created_at"`
}

func (MarketSnapshotModel) TableName() string { return "market_snapshots" }

// TransactionModel represents the transactions table, grounded on the
// teacher's TransactionModel trimmed to spec.md §3's leaner field set, with
// Category retained (expansion) for credits-changed bookkeeping.
type TransactionModel struct {
	ID             string    `gorm:"column:id;primaryKey;size:36;not null"`
	UserID         int       `gorm:"column:user_id;not null;index:idx_transactions_user_time"`
	ShipID         string    `gorm:"column:ship_id;not null"`
	Kind           string    `gorm:"column:kind;not null"`
	Category       string    `gorm:"column:category;not null"`
	Good           string    `gorm:"column:good;not null"`
	PricePerUnit   int       `gorm:"column:price_per_unit;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	Total          int       `gorm:"column:total;not null"`
	LocationSymbol string    `gorm:"column:location_symbol;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index:idx_transactions_user_time"`
}

func (TransactionModel) TableName() string { return "transactions" }

// UserStatsModel represents the user_stats table, an append-only time
// series backing append_user_stats (spec.md §4.2), grounded on the
// teacher's autoCreateTime event-log convention.
type UserStatsModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int       `gorm:"column:user_id;not null;index:idx_user_stats_user_time"`
	Credits   int       `gorm:"column:credits;not null"`
	ShipCount int       `gorm:"column:ship_count;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime;index:idx_user_stats_user_time"`
}

func (UserStatsModel) TableName() string { return "user_stats" }
