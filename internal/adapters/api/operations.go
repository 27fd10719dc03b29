package api

import (
	"context"
	"fmt"
)

// This file implements spec.md §4.1's operation capability set. Each method
// takes typed inputs and returns a typed response or a *ClientError.

// GameStatus reflects whether the remote API is healthy or in maintenance.
type GameStatus struct {
	Status string `json:"status"`
}

func (g *Gateway) GetGameStatus(ctx context.Context) (*GameStatus, error) {
	var out GameStatus
	if err := g.request(ctx, "GET", "/game/status", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimUsername claims a new username and returns its auth token.
type ClaimUsernameResponse struct {
	Token string `json:"token"`
}

func (g *Gateway) ClaimUsername(ctx context.Context, username string) (*ClaimUsernameResponse, error) {
	var out ClaimUsernameResponse
	path := fmt.Sprintf("/users/%s/token", username)
	if err := g.request(ctx, "POST", path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyInfo is the authenticated agent/account summary.
type MyInfo struct {
	Username  string `json:"username"`
	Credits   int    `json:"credits"`
	ShipCount int    `json:"shipCount"`
}

func (g *Gateway) GetMyInfo(ctx context.Context, token string) (*MyInfo, error) {
	var out MyInfo
	if err := g.request(ctx, "GET", "/my/account", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Loan is a single outstanding or available loan.
type Loan struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Amount          int    `json:"amount"`
	RepaymentAmount int    `json:"repaymentAmount"`
}

type LoansResponse struct {
	Loans []Loan `json:"loans"`
}

func (g *Gateway) GetLoans(ctx context.Context, token string) (*LoansResponse, error) {
	var out LoansResponse
	if err := g.request(ctx, "GET", "/my/loans", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AvailableLoansResponse struct {
	Loans []Loan `json:"loans"`
}

func (g *Gateway) ListAvailableLoans(ctx context.Context, token string) (*AvailableLoansResponse, error) {
	var out AvailableLoansResponse
	if err := g.request(ctx, "GET", "/types/loans", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RequestLoanResponse struct {
	Credits int  `json:"credits"`
	Loan    Loan `json:"loan"`
}

func (g *Gateway) RequestLoan(ctx context.Context, token, loanType string) (*RequestLoanResponse, error) {
	var out RequestLoanResponse
	body := map[string]string{"type": loanType}
	if err := g.request(ctx, "POST", "/my/loans", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type PayLoanResponse struct {
	Credits int `json:"credits"`
}

func (g *Gateway) PayLoan(ctx context.Context, token, loanID string) (*PayLoanResponse, error) {
	var out PayLoanResponse
	path := fmt.Sprintf("/my/loans/%s", loanID)
	if err := g.request(ctx, "PUT", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LocationData mirrors one waypoint as the remote API reports it.
type LocationData struct {
	Symbol string  `json:"symbol"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Name   string  `json:"name"`
}

type SystemData struct {
	Symbol    string         `json:"symbol"`
	Name      string         `json:"name"`
	Locations []LocationData `json:"locations"`
}

type SystemsResponse struct {
	Systems []SystemData `json:"systems"`
}

func (g *Gateway) ListSystems(ctx context.Context, token string) (*SystemsResponse, error) {
	var out SystemsResponse
	if err := g.request(ctx, "GET", "/game/systems", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type LocationResponse struct {
	Location LocationData `json:"location"`
}

func (g *Gateway) GetLocation(ctx context.Context, token, locationSymbol string) (*LocationResponse, error) {
	var out LocationResponse
	path := fmt.Sprintf("/game/locations/%s", locationSymbol)
	if err := g.request(ctx, "GET", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketplaceGood is one traded good as reported at a marketplace.
type MarketplaceGood struct {
	Symbol               string `json:"symbol"`
	PricePerUnit         int    `json:"pricePerUnit"`
	PurchasePricePerUnit int    `json:"purchasePricePerUnit"`
	SellPricePerUnit     int    `json:"sellPricePerUnit"`
	VolumePerUnit        int    `json:"volumePerUnit"`
	QuantityAvailable    int    `json:"quantityAvailable"`
}

type MarketplaceResponse struct {
	Location struct {
		Symbol      string            `json:"symbol"`
		Marketplace []MarketplaceGood `json:"marketplace"`
	} `json:"location"`
}

func (g *Gateway) GetMarketplace(ctx context.Context, token, locationSymbol string) (*MarketplaceResponse, error) {
	var out MarketplaceResponse
	path := fmt.Sprintf("/game/locations/%s/marketplace", locationSymbol)
	if err := g.request(ctx, "GET", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShipListing is one ship type/class available for purchase at a location.
type ShipListing struct {
	Type            string   `json:"type"`
	Class           string   `json:"class"`
	MaxCargo        int      `json:"maxCargo"`
	Speed           int      `json:"speed"`
	Manufacturer    string   `json:"manufacturer"`
	Plating         int      `json:"plating"`
	Weapons         int      `json:"weapons"`
	Price           int      `json:"price"`
	RestrictedGoods []string `json:"restrictedGoods"`
	Location        string   `json:"location"`
}

type ShipsForSaleResponse struct {
	Ships []ShipListing `json:"ships"`
}

func (g *Gateway) ListShipsForSale(ctx context.Context, token string) (*ShipsForSaleResponse, error) {
	var out ShipsForSaleResponse
	if err := g.request(ctx, "GET", "/game/ships", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShipData mirrors one owned ship as the remote API reports it.
type ShipData struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Class        string      `json:"class"`
	MaxCargo     int         `json:"maxCargo"`
	Speed        int         `json:"speed"`
	Manufacturer string      `json:"manufacturer"`
	Plating      int         `json:"plating"`
	Weapons      int         `json:"weapons"`
	Location     string      `json:"location"`
	Cargo        []CargoLine `json:"cargo"`
}

type CargoLine struct {
	Good        string `json:"good"`
	Quantity    int    `json:"quantity"`
	TotalVolume int    `json:"totalVolume"`
}

type PurchaseShipResponse struct {
	Credits int      `json:"credits"`
	Ship    ShipData `json:"ship"`
}

func (g *Gateway) PurchaseShip(ctx context.Context, token, location, shipType string) (*PurchaseShipResponse, error) {
	var out PurchaseShipResponse
	body := map[string]string{"location": location, "type": shipType}
	if err := g.request(ctx, "POST", "/my/ships", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type MyShipsResponse struct {
	Ships []ShipData `json:"ships"`
}

func (g *Gateway) ListMyShips(ctx context.Context, token string) (*MyShipsResponse, error) {
	var out MyShipsResponse
	if err := g.request(ctx, "GET", "/my/ships", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type MyShipResponse struct {
	Ship ShipData `json:"ship"`
}

func (g *Gateway) GetMyShip(ctx context.Context, token, shipID string) (*MyShipResponse, error) {
	var out MyShipResponse
	path := fmt.Sprintf("/my/ships/%s", shipID)
	if err := g.request(ctx, "GET", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FlightPlanData mirrors spec.md §3's FlightPlan entity as the remote API
// reports it.
type FlightPlanData struct {
	ID                     string  `json:"id"`
	ShipID                 string  `json:"shipId"`
	Origin                 string  `json:"departure"`
	Destination            string  `json:"destination"`
	Distance               float64 `json:"distance"`
	FuelConsumed           int     `json:"fuelConsumed"`
	FuelRemaining          int     `json:"fuelRemaining"`
	TimeRemainingInSeconds int     `json:"timeRemainingInSeconds"`
	ArrivesAt              string  `json:"arrivesAt"`
	CreatedAt              string  `json:"createdAt"`
}

type FlightPlanResponse struct {
	FlightPlan FlightPlanData `json:"flightPlan"`
}

func (g *Gateway) CreateFlightPlan(ctx context.Context, token, shipID, destination string) (*FlightPlanResponse, error) {
	var out FlightPlanResponse
	body := map[string]string{"shipId": shipID, "destination": destination}
	if err := g.request(ctx, "POST", "/my/flight-plans", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) GetFlightPlan(ctx context.Context, token, flightPlanID string) (*FlightPlanResponse, error) {
	var out FlightPlanResponse
	path := fmt.Sprintf("/my/flight-plans/%s", flightPlanID)
	if err := g.request(ctx, "GET", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderResponse is the shared response shape for purchase/sell orders.
type OrderResponse struct {
	Credits int       `json:"credits"`
	Order   OrderData `json:"order"`
	Ship    ShipData  `json:"ship"`
}

type OrderData struct {
	Good         string `json:"good"`
	Quantity     int    `json:"quantity"`
	PricePerUnit int    `json:"pricePerUnit"`
	Total        int    `json:"total"`
}

func (g *Gateway) CreatePurchaseOrder(ctx context.Context, token, shipID, good string, quantity int) (*OrderResponse, error) {
	var out OrderResponse
	body := map[string]interface{}{"shipId": shipID, "good": good, "quantity": quantity}
	if err := g.request(ctx, "POST", "/my/purchase-orders", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) CreateSellOrder(ctx context.Context, token, shipID, good string, quantity int) (*OrderResponse, error) {
	var out OrderResponse
	body := map[string]interface{}{"shipId": shipID, "good": good, "quantity": quantity}
	if err := g.request(ctx, "POST", "/my/sell-orders", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type JettisonResponse struct {
	Good      string `json:"good"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

func (g *Gateway) JettisonCargo(ctx context.Context, token, shipID, good string, quantity int) (*JettisonResponse, error) {
	var out JettisonResponse
	body := map[string]interface{}{"shipId": shipID, "good": good, "quantity": quantity}
	if err := g.request(ctx, "POST", "/my/ships/"+shipID+"/jettison", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type WarpJumpResponse struct {
	FlightPlan FlightPlanData `json:"flightPlan"`
}

func (g *Gateway) AttemptWarpJump(ctx context.Context, token, shipID string) (*WarpJumpResponse, error) {
	var out WarpJumpResponse
	body := map[string]string{"shipId": shipID}
	if err := g.request(ctx, "POST", "/my/warp-jumps", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
