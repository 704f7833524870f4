package dto

import (
	"time"

	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/challan"
	"zenbill/internal/domain/documents/purchaseorder"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/domain/documents/vendorcredit"
	"zenbill/internal/domain/tax"
)

// chargeMode tolerates an empty mode so optional TDS/TCS blocks can be
// omitted from requests entirely.
func chargeMode(s string) tax.ChargeMode {
	if s == "" {
		return tax.ChargeRate
	}
	return tax.ChargeMode(s)
}

// --- Lines ---

// LineRequest is one item row on a document request. Derived amounts
// are never accepted from the client; the document recalculates them.
type LineRequest struct {
	ItemID        id.ID   `json:"itemId" binding:"required"`
	ItemName      string  `json:"itemName"`
	Description   string  `json:"description"`
	HSN           string  `json:"hsn"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity" binding:"required"`
	Rate          float64 `json:"rate"`
	DiscountValue float64 `json:"discountValue"`
	DiscountType  string  `json:"discountType"`
	TaxRate       float64 `json:"taxRate"`
	TaxName       string  `json:"taxName"`
	NonTaxable    bool    `json:"nonTaxable"`
}

// ToLine builds a document line with a fresh line ID.
func (r LineRequest) ToLine() documents.Line {
	line := documents.NewLine(r.ItemID, r.ItemName, r.Quantity, r.Rate, r.TaxRate)
	line.Description = r.Description
	line.HSN = r.HSN
	line.Unit = r.Unit
	line.DiscountValue = r.DiscountValue
	line.DiscountType = tax.DiscountType(r.DiscountType)
	line.TaxName = r.TaxName
	line.NonTaxable = r.NonTaxable
	return line
}

// ToLines converts a request line slice, assigning line numbers.
func ToLines(reqs []LineRequest) []documents.Line {
	lines := make([]documents.Line, len(reqs))
	for i, r := range reqs {
		lines[i] = r.ToLine()
		lines[i].LineNo = i + 1
	}
	return lines
}

// tradeFields are the document-level inputs shared by trade documents.
type tradeFields struct {
	Date             *time.Time    `json:"date"`
	SourceState      string        `json:"sourceState"`
	DestinationState string        `json:"destinationState"`
	ShippingCharges  float64       `json:"shippingCharges"`
	Adjustment       float64       `json:"adjustment"`
	AdjustmentReason string        `json:"adjustmentReason"`
	Notes            string        `json:"notes"`
	Lines            []LineRequest `json:"lines"`
}

func (f tradeFields) applyTo(d *documents.TradeDocument) {
	if f.Date != nil {
		d.Date = *f.Date
	}
	if f.SourceState != "" {
		d.SourceState = f.SourceState
	}
	if f.DestinationState != "" {
		d.DestinationState = f.DestinationState
	}
	d.ShippingCharges = f.ShippingCharges
	d.Adjustment = f.Adjustment
	d.AdjustmentReason = f.AdjustmentReason
	d.Notes = f.Notes
	if f.Lines != nil {
		d.Lines = ToLines(f.Lines)
	}
}

// updateTradeFields is the nil-means-unchanged variant for updates.
type updateTradeFields struct {
	Date             *time.Time    `json:"date"`
	SourceState      *string       `json:"sourceState"`
	DestinationState *string       `json:"destinationState"`
	ShippingCharges  *float64      `json:"shippingCharges"`
	Adjustment       *float64      `json:"adjustment"`
	AdjustmentReason *string       `json:"adjustmentReason"`
	Notes            *string       `json:"notes"`
	Lines            []LineRequest `json:"lines"`
}

func (f updateTradeFields) applyTo(d *documents.TradeDocument) {
	if f.Date != nil {
		d.Date = *f.Date
	}
	if f.SourceState != nil {
		d.SourceState = *f.SourceState
	}
	if f.DestinationState != nil {
		d.DestinationState = *f.DestinationState
	}
	if f.ShippingCharges != nil {
		d.ShippingCharges = *f.ShippingCharges
	}
	if f.Adjustment != nil {
		d.Adjustment = *f.Adjustment
	}
	if f.AdjustmentReason != nil {
		d.AdjustmentReason = *f.AdjustmentReason
	}
	if f.Notes != nil {
		d.Notes = *f.Notes
	}
	if f.Lines != nil {
		d.Lines = ToLines(f.Lines)
	}
}

// --- Quote ---

// CreateQuoteRequest for creating quotes.
type CreateQuoteRequest struct {
	tradeFields
	OrganizationID string     `json:"organizationId" binding:"required"`
	CustomerID     id.ID      `json:"customerId" binding:"required"`
	CustomerName   string     `json:"customerName"`
	ExpiryDate     *time.Time `json:"expiryDate"`
}

// ToQuote maps the request to a new draft quote.
func (r CreateQuoteRequest) ToQuote() *quote.Quote {
	q := quote.New(r.OrganizationID, r.CustomerID, r.SourceState, r.DestinationState)
	r.tradeFields.applyTo(&q.TradeDocument)
	q.CustomerName = r.CustomerName
	q.ExpiryDate = r.ExpiryDate
	return q
}

// UpdateQuoteRequest for updating quotes.
type UpdateQuoteRequest struct {
	updateTradeFields
	CustomerID   *id.ID     `json:"customerId"`
	CustomerName *string    `json:"customerName"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Version      int        `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing quote.
func (r UpdateQuoteRequest) ApplyTo(q *quote.Quote) *quote.Quote {
	r.updateTradeFields.applyTo(&q.TradeDocument)
	if r.CustomerID != nil {
		q.CustomerID = *r.CustomerID
	}
	if r.CustomerName != nil {
		q.CustomerName = *r.CustomerName
	}
	if r.ExpiryDate != nil {
		q.ExpiryDate = r.ExpiryDate
	}
	q.Version = r.Version
	return q
}

// --- Sales Order ---

// CreateSalesOrderRequest for creating sales orders.
type CreateSalesOrderRequest struct {
	tradeFields
	OrganizationID       string     `json:"organizationId" binding:"required"`
	CustomerID           id.ID      `json:"customerId" binding:"required"`
	CustomerName         string     `json:"customerName"`
	ExpectedShipmentDate *time.Time `json:"expectedShipmentDate"`
}

// ToSalesOrder maps the request to a new draft sales order.
func (r CreateSalesOrderRequest) ToSalesOrder() *salesorder.SalesOrder {
	so := salesorder.New(r.OrganizationID, r.CustomerID, r.SourceState, r.DestinationState)
	r.tradeFields.applyTo(&so.TradeDocument)
	so.CustomerName = r.CustomerName
	so.ExpectedShipmentDate = r.ExpectedShipmentDate
	return so
}

// UpdateSalesOrderRequest for updating sales orders.
type UpdateSalesOrderRequest struct {
	updateTradeFields
	CustomerID           *id.ID     `json:"customerId"`
	CustomerName         *string    `json:"customerName"`
	ExpectedShipmentDate *time.Time `json:"expectedShipmentDate"`
	Version              int        `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing sales order.
func (r UpdateSalesOrderRequest) ApplyTo(so *salesorder.SalesOrder) *salesorder.SalesOrder {
	r.updateTradeFields.applyTo(&so.TradeDocument)
	if r.CustomerID != nil {
		so.CustomerID = *r.CustomerID
	}
	if r.CustomerName != nil {
		so.CustomerName = *r.CustomerName
	}
	if r.ExpectedShipmentDate != nil {
		so.ExpectedShipmentDate = r.ExpectedShipmentDate
	}
	so.Version = r.Version
	return so
}

// --- Delivery Challan ---

// CreateChallanRequest for creating delivery challans.
type CreateChallanRequest struct {
	tradeFields
	OrganizationID string `json:"organizationId" binding:"required"`
	CustomerID     id.ID  `json:"customerId" binding:"required"`
	CustomerName   string `json:"customerName"`
	ChallanType    string `json:"challanType" binding:"required"`
	VehicleNumber  string `json:"vehicleNumber"`
	PlaceOfSupply  string `json:"placeOfSupply"`
}

// ToChallan maps the request to a new draft delivery challan.
func (r CreateChallanRequest) ToChallan() *challan.DeliveryChallan {
	dc := challan.New(r.OrganizationID, r.CustomerID, challan.ChallanType(r.ChallanType), r.SourceState, r.DestinationState)
	r.tradeFields.applyTo(&dc.TradeDocument)
	dc.CustomerName = r.CustomerName
	dc.VehicleNumber = r.VehicleNumber
	dc.PlaceOfSupply = r.PlaceOfSupply
	return dc
}

// UpdateChallanRequest for updating delivery challans.
type UpdateChallanRequest struct {
	updateTradeFields
	CustomerID    *id.ID  `json:"customerId"`
	CustomerName  *string `json:"customerName"`
	ChallanType   *string `json:"challanType"`
	VehicleNumber *string `json:"vehicleNumber"`
	PlaceOfSupply *string `json:"placeOfSupply"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing delivery challan.
func (r UpdateChallanRequest) ApplyTo(dc *challan.DeliveryChallan) *challan.DeliveryChallan {
	r.updateTradeFields.applyTo(&dc.TradeDocument)
	if r.CustomerID != nil {
		dc.CustomerID = *r.CustomerID
	}
	if r.CustomerName != nil {
		dc.CustomerName = *r.CustomerName
	}
	if r.ChallanType != nil {
		dc.Type = challan.ChallanType(*r.ChallanType)
	}
	if r.VehicleNumber != nil {
		dc.VehicleNumber = *r.VehicleNumber
	}
	if r.PlaceOfSupply != nil {
		dc.PlaceOfSupply = *r.PlaceOfSupply
	}
	dc.Version = r.Version
	return dc
}

// --- TDS/TCS charges ---

// ChargeRequest carries an optional TDS or TCS charge.
type ChargeRequest struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// --- Purchase Order ---

// CreatePurchaseOrderRequest for creating purchase orders.
type CreatePurchaseOrderRequest struct {
	tradeFields
	OrganizationID  string            `json:"organizationId" binding:"required"`
	VendorID        id.ID             `json:"vendorId" binding:"required"`
	VendorName      string            `json:"vendorName"`
	DeliveryAddress entity.Attributes `json:"deliveryAddress"`
	TDS             *ChargeRequest    `json:"tds"`
	TCS             *ChargeRequest    `json:"tcs"`
}

// ToPurchaseOrder maps the request to a new draft purchase order.
func (r CreatePurchaseOrderRequest) ToPurchaseOrder() *purchaseorder.PurchaseOrder {
	po := purchaseorder.New(r.OrganizationID, r.VendorID, r.SourceState, r.DestinationState)
	r.tradeFields.applyTo(&po.TradeDocument)
	po.VendorName = r.VendorName
	po.DeliveryAddress = r.DeliveryAddress
	if r.TDS != nil {
		po.TDSMode = chargeMode(r.TDS.Mode)
		po.TDSValue = r.TDS.Value
		po.TDSLabel = r.TDS.Label
	}
	if r.TCS != nil {
		po.TCSMode = chargeMode(r.TCS.Mode)
		po.TCSValue = r.TCS.Value
		po.TCSLabel = r.TCS.Label
	}
	return po
}

// UpdatePurchaseOrderRequest for updating purchase orders.
type UpdatePurchaseOrderRequest struct {
	updateTradeFields
	VendorID        *id.ID            `json:"vendorId"`
	VendorName      *string           `json:"vendorName"`
	DeliveryAddress entity.Attributes `json:"deliveryAddress"`
	TDS             *ChargeRequest    `json:"tds"`
	TCS             *ChargeRequest    `json:"tcs"`
	Version         int               `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing purchase order.
func (r UpdatePurchaseOrderRequest) ApplyTo(po *purchaseorder.PurchaseOrder) *purchaseorder.PurchaseOrder {
	r.updateTradeFields.applyTo(&po.TradeDocument)
	if r.VendorID != nil {
		po.VendorID = *r.VendorID
	}
	if r.VendorName != nil {
		po.VendorName = *r.VendorName
	}
	if r.DeliveryAddress != nil {
		po.DeliveryAddress = r.DeliveryAddress
	}
	if r.TDS != nil {
		po.TDSMode = chargeMode(r.TDS.Mode)
		po.TDSValue = r.TDS.Value
		po.TDSLabel = r.TDS.Label
	}
	if r.TCS != nil {
		po.TCSMode = chargeMode(r.TCS.Mode)
		po.TCSValue = r.TCS.Value
		po.TCSLabel = r.TCS.Label
	}
	po.Version = r.Version
	return po
}

// --- Vendor Credit ---

// CreateVendorCreditRequest for creating vendor credits.
type CreateVendorCreditRequest struct {
	tradeFields
	OrganizationID string         `json:"organizationId" binding:"required"`
	VendorID       id.ID          `json:"vendorId" binding:"required"`
	VendorName     string         `json:"vendorName"`
	Reason         string         `json:"reason"`
	TDS            *ChargeRequest `json:"tds"`
	TCS            *ChargeRequest `json:"tcs"`
}

// ToVendorCredit maps the request to a new draft vendor credit.
func (r CreateVendorCreditRequest) ToVendorCredit() *vendorcredit.VendorCredit {
	vc := vendorcredit.New(r.OrganizationID, r.VendorID, r.SourceState, r.DestinationState)
	r.tradeFields.applyTo(&vc.TradeDocument)
	vc.VendorName = r.VendorName
	vc.Reason = r.Reason
	if r.TDS != nil {
		vc.TDSMode = chargeMode(r.TDS.Mode)
		vc.TDSValue = r.TDS.Value
		vc.TDSLabel = r.TDS.Label
	}
	if r.TCS != nil {
		vc.TCSMode = chargeMode(r.TCS.Mode)
		vc.TCSValue = r.TCS.Value
		vc.TCSLabel = r.TCS.Label
	}
	return vc
}

// UpdateVendorCreditRequest for updating vendor credits.
type UpdateVendorCreditRequest struct {
	updateTradeFields
	VendorID   *id.ID         `json:"vendorId"`
	VendorName *string        `json:"vendorName"`
	Reason     *string        `json:"reason"`
	TDS        *ChargeRequest `json:"tds"`
	TCS        *ChargeRequest `json:"tcs"`
	Version    int            `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing vendor credit.
func (r UpdateVendorCreditRequest) ApplyTo(vc *vendorcredit.VendorCredit) *vendorcredit.VendorCredit {
	r.updateTradeFields.applyTo(&vc.TradeDocument)
	if r.VendorID != nil {
		vc.VendorID = *r.VendorID
	}
	if r.VendorName != nil {
		vc.VendorName = *r.VendorName
	}
	if r.Reason != nil {
		vc.Reason = *r.Reason
	}
	if r.TDS != nil {
		vc.TDSMode = chargeMode(r.TDS.Mode)
		vc.TDSValue = r.TDS.Value
		vc.TDSLabel = r.TDS.Label
	}
	if r.TCS != nil {
		vc.TCSMode = chargeMode(r.TCS.Mode)
		vc.TCSValue = r.TCS.Value
		vc.TCSLabel = r.TCS.Label
	}
	vc.Version = r.Version
	return vc
}

// ApplyCreditRequest applies part of an issued vendor credit.
type ApplyCreditRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
