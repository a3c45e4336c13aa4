// Package orderrepo persists order aggregates and their cargo manifests.
package orderrepo

import (
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Origin      AddressDTO     `gorm:"embedded;embeddedPrefix:origin_"`
	Destination AddressDTO     `gorm:"embedded;embeddedPrefix:destination_"`
	Status      int            `gorm:"type:smallint;not null;index"`
	LoadingAt   time.Time      `gorm:"not null;index"`
	UnloadingAt time.Time      `gorm:"not null;index"`
	Deleted     bool           `gorm:"not null;default:false"`
	Lines       []CargoLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded twice in the orders table.
type AddressDTO struct {
	Name     string `gorm:"type:varchar(255)"`
	Line1    string `gorm:"type:varchar(255)"`
	Town     string `gorm:"type:varchar(128)"`
	Postcode string `gorm:"type:varchar(16)"`
}

// CargoLineDTO stores one manifest line. Weight and spaces are line totals.
type CargoLineDTO struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	PalletType string          `gorm:"type:varchar(64);not null"`
	Quantity   int             `gorm:"not null"`
	Weight     decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Spaces     int             `gorm:"not null"`
}

func (CargoLineDTO) TableName() string {
	return "order_cargo_lines"
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Name:     a.Name(),
		Line1:    a.Line1(),
		Town:     a.Town(),
		Postcode: a.Postcode().String(),
	}
}

func addressToDomain(dto AddressDTO) kernel.Address {
	return kernel.NewAddress(dto.Name, dto.Line1, dto.Town, kernel.NewPostcode(dto.Postcode))
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	lines := make([]CargoLineDTO, 0, len(aggregate.Lines()))
	for i, l := range aggregate.Lines() {
		lines = append(lines, CargoLineDTO{
			OrderID:    id,
			Position:   i,
			PalletType: l.PalletType(),
			Quantity:   l.Quantity(),
			Weight:     l.Weight(),
			Spaces:     l.Spaces(),
		})
	}

	return OrderDTO{
		ID:          id,
		Origin:      addressFromDomain(aggregate.Origin()),
		Destination: addressFromDomain(aggregate.Destination()),
		Status:      int(aggregate.Status()),
		LoadingAt:   aggregate.LoadingAt(),
		UnloadingAt: aggregate.UnloadingAt(),
		Deleted:     aggregate.IsDeleted(),
		Lines:       lines,
	}
}

// ToDomain rebuilds an order from its row and preloaded lines. Query handlers
// reuse it when reading orders through raw SQL.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.CargoLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := order.NewCargoLine(l.PalletType, l.Quantity, l.Weight, l.Spaces)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		addressToDomain(dto.Origin),
		addressToDomain(dto.Destination),
		lines,
		order.Status(dto.Status),
		dto.LoadingAt,
		dto.UnloadingAt,
		dto.Deleted,
	)
}
