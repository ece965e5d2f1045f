// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and pending cancellation requests.
//
// The version column carries the optimistic-concurrency token: it is written
// only through the compare-and-swap in GormOrderRepository.Update.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version            int64     `gorm:"not null"`
	CustomerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             int       `gorm:"not null;index"`
	PaymentStatus      int       `gorm:"not null"`
	PaymentMethod      int       `gorm:"not null"`
	LastPaymentEventID string    `gorm:"type:varchar(255)"`

	Pricing         PricingDTO `gorm:"embedded;embeddedPrefix:pricing_"`
	ShippingAddress AddressDTO `gorm:"embedded;embeddedPrefix:address_"`

	// Cancellation request, present once a customer has asked to cancel.
	// Presence is keyed on CancellationRequestedBy.
	CancellationRequestedBy *uuid.UUID `gorm:"type:uuid"`
	CancellationReason      *string    `gorm:"type:text"`
	CancellationRequestedAt *time.Time
	CancellationDecision    *int `gorm:"index"`
	CancellationDecidedBy   *uuid.UUID `gorm:"type:uuid"`
	CancellationDecidedAt   *time.Time

	// Cash collected so far for cash-on-delivery orders.
	// Presence is keyed on CashCollectedBy.
	CashAmount      *int64
	CashCollectedBy *uuid.UUID `gorm:"type:uuid"`
	CashCollectedAt *time.Time

	InvoiceID  *string `gorm:"type:varchar(255)"`
	InvoiceURL *string `gorm:"type:text"`

	LineItems          []LineItemDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	FulfillmentEntries []FulfillmentEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PricingDTO represents the embedded pricing breakdown within the order table.
// All amounts are stored in minor currency units.
type PricingDTO struct {
	Subtotal int64 `gorm:"not null"`
	Tax      int64 `gorm:"not null"`
	Shipping int64 `gorm:"not null"`
	Discount int64 `gorm:"not null"`
	Total    int64 `gorm:"not null"`
}

// AddressDTO represents the embedded shipping address within the order table.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(32);not null"`
	Country    string `gorm:"type:varchar(64);not null"`
}

// LineItemDTO represents the database structure for persisting order line items.
// Links to the order via foreign key; Position preserves the original item order.
type LineItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
}

// TableName specifies the database table name for line item entities.
// Overrides GORM's default naming convention to use "order_line_items".
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// FulfillmentEntryDTO represents the database structure for persisting fulfillment
// audit entries. Links to the order via foreign key; Position preserves append order.
type FulfillmentEntryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	Stage      int       `gorm:"not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	OccurredAt time.Time `gorm:"not null"`
	Note       string    `gorm:"type:text"`
}

// TableName specifies the database table name for fulfillment entry entities.
// Overrides GORM's default naming convention to use "order_fulfillment_entries".
func (FulfillmentEntryDTO) TableName() string {
	return "order_fulfillment_entries"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional cancellation, cash collection
// and invoice state plus the child line item and fulfillment entry rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lineItems := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for i, item := range aggregate.LineItems() {
		lineItems = append(lineItems, LineItemDTO{
			OrderID:   orderID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	entries := make([]FulfillmentEntryDTO, 0, aggregate.FulfillmentLog().Len())
	for i, entry := range aggregate.FulfillmentLog().Entries() {
		entries = append(entries, FulfillmentEntryDTO{
			OrderID:    orderID,
			Position:   i,
			Stage:      int(entry.Stage()),
			ActorID:    entry.ActorID().Bytes(),
			OccurredAt: entry.OccurredAt(),
			Note:       entry.Note(),
		})
	}

	pricing := aggregate.Pricing()
	address := aggregate.ShippingAddress()

	dto := OrderDTO{
		ID:                 orderID,
		Version:            aggregate.Version(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		Status:             int(aggregate.Status()),
		PaymentStatus:      int(aggregate.PaymentStatus()),
		PaymentMethod:      int(aggregate.PaymentMethod()),
		LastPaymentEventID: aggregate.LastPaymentEventID(),
		Pricing: PricingDTO{
			Subtotal: pricing.Subtotal().Amount(),
			Tax:      pricing.Tax().Amount(),
			Shipping: pricing.Shipping().Amount(),
			Discount: pricing.Discount().Amount(),
			Total:    pricing.Total().Amount(),
		},
		ShippingAddress: AddressDTO{
			Street:     address.Street(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		LineItems:          lineItems,
		FulfillmentEntries: entries,
	}

	if cancellation := aggregate.Cancellation(); cancellation != nil {
		requestedBy := cancellation.RequestedBy().Bytes()
		reason := cancellation.RequestedReason()
		requestedAt := cancellation.RequestedAt()
		decision := int(cancellation.Decision())

		dto.CancellationRequestedBy = &requestedBy
		dto.CancellationReason = &reason
		dto.CancellationRequestedAt = &requestedAt
		dto.CancellationDecision = &decision
		if decidedBy := cancellation.DecidedBy(); decidedBy != nil {
			raw := decidedBy.Bytes()
			dto.CancellationDecidedBy = &raw
		}
		dto.CancellationDecidedAt = cancellation.DecidedAt()
	}

	if cash := aggregate.CashCollection(); cash != nil {
		amount := cash.CollectedAmount().Amount()
		collectedBy := cash.CollectedBy().Bytes()
		collectedAt := cash.CollectedAt()

		dto.CashAmount = &amount
		dto.CashCollectedBy = &collectedBy
		dto.CashCollectedAt = &collectedAt
	}

	if invoice := aggregate.Invoice(); invoice != nil {
		id := invoice.ID()
		url := invoice.URL()

		dto.InvoiceID = &id
		dto.InvoiceURL = &url
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items, cancellation,
// cash collection, fulfillment log and invoice using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	pricing, err := pricingToDomain(dto.Pricing)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.ShippingAddress.Street,
		dto.ShippingAddress.City,
		dto.ShippingAddress.PostalCode,
		dto.ShippingAddress.Country,
	)
	if err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, 0, len(dto.LineItems))
	for _, itemDto := range dto.LineItems {
		item, itemErr := lineItemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, item)
	}

	entries := make([]order.FulfillmentEntry, 0, len(dto.FulfillmentEntries))
	for _, entryDto := range dto.FulfillmentEntries {
		entry, entryErr := fulfillmentEntryToDomain(entryDto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	fulfillmentLog, err := order.RestoreFulfillmentLog(entries)
	if err != nil {
		return nil, err
	}

	cancellation, err := cancellationToDomain(dto)
	if err != nil {
		return nil, err
	}

	cashCollection, err := cashCollectionToDomain(dto)
	if err != nil {
		return nil, err
	}

	var invoice *order.Invoice
	if dto.InvoiceID != nil && dto.InvoiceURL != nil {
		inv, invErr := order.NewInvoice(*dto.InvoiceID, *dto.InvoiceURL)
		if invErr != nil {
			return nil, invErr
		}
		invoice = &inv
	}

	return order.RestoreOrder(
		id,
		dto.Version,
		customerID,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		order.PaymentMethod(dto.PaymentMethod),
		dto.LastPaymentEventID,
		pricing,
		lineItems,
		address,
		cancellation,
		cashCollection,
		fulfillmentLog,
		invoice,
	)
}

// pricingToDomain converts the embedded pricing columns to a domain Pricing.
func pricingToDomain(dto PricingDTO) (order.Pricing, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Pricing{}, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return order.Pricing{}, err
	}
	shipping, err := kernel.NewMoney(dto.Shipping)
	if err != nil {
		return order.Pricing{}, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return order.Pricing{}, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.Pricing{}, err
	}

	return order.RestorePricing(subtotal, tax, shipping, discount, total)
}

// lineItemToDomain converts a line item DTO to a domain entity.
func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(productID, dto.Quantity, unitPrice)
}

// fulfillmentEntryToDomain converts a fulfillment entry DTO to a domain entity.
func fulfillmentEntryToDomain(dto FulfillmentEntryDTO) (order.FulfillmentEntry, error) {
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.FulfillmentEntry{}, err
	}

	return order.NewFulfillmentEntry(order.Status(dto.Stage), actorID, dto.OccurredAt, dto.Note)
}

// cancellationToDomain reconstructs the cancellation request from its nullable columns.
// Returns nil when the order has no cancellation request.
func cancellationToDomain(dto OrderDTO) (*order.Cancellation, error) {
	if dto.CancellationRequestedBy == nil {
		return nil, nil
	}

	requestedBy, err := kernel.UUIDFromBytes((*dto.CancellationRequestedBy)[:])
	if err != nil {
		return nil, err
	}

	var reason string
	if dto.CancellationReason != nil {
		reason = *dto.CancellationReason
	}

	var requestedAt time.Time
	if dto.CancellationRequestedAt != nil {
		requestedAt = *dto.CancellationRequestedAt
	}

	var decision order.CancellationDecision
	if dto.CancellationDecision != nil {
		decision = order.CancellationDecision(*dto.CancellationDecision)
	}

	var decidedBy *kernel.UUID
	if dto.CancellationDecidedBy != nil {
		dID, decidedErr := kernel.UUIDFromBytes((*dto.CancellationDecidedBy)[:])
		if decidedErr != nil {
			return nil, decidedErr
		}
		decidedBy = &dID
	}

	cancellation, err := order.RestoreCancellation(
		requestedBy, reason, requestedAt, decision, decidedBy, dto.CancellationDecidedAt,
	)
	if err != nil {
		return nil, err
	}

	return &cancellation, nil
}

// cashCollectionToDomain reconstructs the cash collection state from its nullable columns.
// Returns nil when no cash has been collected.
func cashCollectionToDomain(dto OrderDTO) (*order.CashCollection, error) {
	if dto.CashCollectedBy == nil {
		return nil, nil
	}

	var rawAmount int64
	if dto.CashAmount != nil {
		rawAmount = *dto.CashAmount
	}

	amount, err := kernel.NewMoney(rawAmount)
	if err != nil {
		return nil, err
	}

	collectedBy, err := kernel.UUIDFromBytes((*dto.CashCollectedBy)[:])
	if err != nil {
		return nil, err
	}

	var collectedAt time.Time
	if dto.CashCollectedAt != nil {
		collectedAt = *dto.CashCollectedAt
	}

	cash, err := order.NewCashCollection(amount, collectedBy, collectedAt)
	if err != nil {
		return nil, err
	}

	return &cash, nil
}
