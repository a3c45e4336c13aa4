package http

import (
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type Created struct {
	ID string `json:"id"`
}

type DeletedRun struct {
	ReleasedOrders int `json:"releasedOrders"`
}

type AddressRequest struct {
	Name     string `json:"name"`
	Line1    string `json:"line1"`
	Town     string `json:"town"`
	Postcode string `json:"postcode"`
}

func (a AddressRequest) toAddress() kernel.Address {
	return kernel.NewAddress(a.Name, a.Line1, a.Town, kernel.NewPostcode(a.Postcode))
}

type CargoLineRequest struct {
	PalletType string          `json:"palletType"`
	Quantity   int             `json:"quantity"`
	Weight     decimal.Decimal `json:"weight"`
	Spaces     int             `json:"spaces"`
}

type NewOrderRequest struct {
	ID          *openapi_types.UUID `json:"id,omitempty"`
	Origin      AddressRequest      `json:"origin"`
	Destination AddressRequest      `json:"destination"`
	Lines       []CargoLineRequest  `json:"lines"`
	LoadingAt   time.Time           `json:"loadingAt"`
	UnloadingAt time.Time           `json:"unloadingAt"`
}

func (r NewOrderRequest) cargoLines() ([]order.CargoLine, error) {
	lines := make([]order.CargoLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		line, err := order.NewCargoLine(l.PalletType, l.Quantity, l.Weight, l.Spaces)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type NewRunRequest struct {
	ID        *openapi_types.UUID `json:"id,omitempty"`
	Date      openapi_types.Date  `json:"date"`
	Type      string              `json:"type"`
	DriverID  openapi_types.UUID  `json:"driverId"`
	VehicleID openapi_types.UUID  `json:"vehicleId"`
	TrailerID *openapi_types.UUID `json:"trailerId,omitempty"`
}

type NewVehicleRequest struct {
	ID            *openapi_types.UUID `json:"id,omitempty"`
	Registration  string              `json:"registration"`
	Kind          string              `json:"kind"`
	PayloadWeight decimal.Decimal     `json:"payloadWeight"`
	PalletSpaces  int                 `json:"palletSpaces"`
}

type NewTrailerRequest struct {
	ID            *openapi_types.UUID `json:"id,omitempty"`
	Registration  string              `json:"registration"`
	PayloadWeight decimal.Decimal     `json:"payloadWeight"`
	PalletSpaces  int                 `json:"palletSpaces"`
}

type NewAssignmentRequest struct {
	OrderID openapi_types.UUID `json:"orderId"`
	RunID   openapi_types.UUID `json:"runId"`
	Note    string             `json:"note"`
}

type MoveRequest struct {
	OrderID   openapi_types.UUID `json:"orderId"`
	FromRunID openapi_types.UUID `json:"fromRunId"`
	ToRunID   openapi_types.UUID `json:"toRunId"`
}

type OrderIDsRequest struct {
	OrderIDs []openapi_types.UUID `json:"orderIds"`
}

type AssignmentIDsRequest struct {
	AssignmentIDs []openapi_types.UUID `json:"assignmentIds"`
}
