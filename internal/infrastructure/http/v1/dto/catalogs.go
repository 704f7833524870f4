package dto

import (
	"zenbill/internal/core/entity"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/catalogs/customer"
	"zenbill/internal/domain/catalogs/item"
	"zenbill/internal/domain/catalogs/organization"
	"zenbill/internal/domain/catalogs/vendor"
)

// --- Customer ---

// CreateCustomerRequest for creating customers.
type CreateCustomerRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	Treatment       string            `json:"treatment" binding:"required"`
	GSTIN           *string           `json:"gstin"`
	BillingState    string            `json:"billingState"`
	BillingAddress  entity.Attributes `json:"billingAddress"`
	ShippingAddress entity.Attributes `json:"shippingAddress"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email"`
	ContactPerson   *string           `json:"contactPerson"`
	Comment         *string           `json:"comment"`
}

// ToCustomer maps the request to a new domain customer.
func (r CreateCustomerRequest) ToCustomer() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name, customer.GSTTreatment(r.Treatment))
	c.GSTIN = r.GSTIN
	c.BillingState = r.BillingState
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	c.Comment = r.Comment
	return c
}

// UpdateCustomerRequest for updating customers. Nil fields stay unchanged.
type UpdateCustomerRequest struct {
	Name            *string           `json:"name"`
	Treatment       *string           `json:"treatment"`
	GSTIN           *string           `json:"gstin"`
	BillingState    *string           `json:"billingState"`
	BillingAddress  entity.Attributes `json:"billingAddress"`
	ShippingAddress entity.Attributes `json:"shippingAddress"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email"`
	ContactPerson   *string           `json:"contactPerson"`
	Comment         *string           `json:"comment"`
	Version         int               `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing customer.
func (r UpdateCustomerRequest) ApplyTo(c *customer.Customer) *customer.Customer {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Treatment != nil {
		c.Treatment = customer.GSTTreatment(*r.Treatment)
	}
	if r.GSTIN != nil {
		c.GSTIN = r.GSTIN
	}
	if r.BillingState != nil {
		c.BillingState = *r.BillingState
	}
	if r.BillingAddress != nil {
		c.BillingAddress = r.BillingAddress
	}
	if r.ShippingAddress != nil {
		c.ShippingAddress = r.ShippingAddress
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.ContactPerson != nil {
		c.ContactPerson = r.ContactPerson
	}
	if r.Comment != nil {
		c.Comment = r.Comment
	}
	c.Version = r.Version
	return c
}

// --- Vendor ---

// CreateVendorRequest for creating vendors.
type CreateVendorRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	GSTIN           *string           `json:"gstin"`
	SourceState     string            `json:"sourceState" binding:"required"`
	Address         entity.Attributes `json:"address"`
	DefaultTDSMode  string            `json:"defaultTdsMode"`
	DefaultTDSValue float64           `json:"defaultTdsValue"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email"`
	Comment         *string           `json:"comment"`
}

// ToVendor maps the request to a new domain vendor.
func (r CreateVendorRequest) ToVendor() *vendor.Vendor {
	v := vendor.NewVendor(r.Code, r.Name, r.SourceState)
	v.GSTIN = r.GSTIN
	v.Address = r.Address
	v.DefaultTDSMode = chargeMode(r.DefaultTDSMode)
	v.DefaultTDSValue = r.DefaultTDSValue
	v.Phone = r.Phone
	v.Email = r.Email
	v.Comment = r.Comment
	return v
}

// UpdateVendorRequest for updating vendors. Nil fields stay unchanged.
type UpdateVendorRequest struct {
	Name            *string           `json:"name"`
	GSTIN           *string           `json:"gstin"`
	SourceState     *string           `json:"sourceState"`
	Address         entity.Attributes `json:"address"`
	DefaultTDSMode  *string           `json:"defaultTdsMode"`
	DefaultTDSValue *float64          `json:"defaultTdsValue"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email"`
	Comment         *string           `json:"comment"`
	Version         int               `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing vendor.
func (r UpdateVendorRequest) ApplyTo(v *vendor.Vendor) *vendor.Vendor {
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.GSTIN != nil {
		v.GSTIN = r.GSTIN
	}
	if r.SourceState != nil {
		v.SourceState = *r.SourceState
	}
	if r.Address != nil {
		v.Address = r.Address
	}
	if r.DefaultTDSMode != nil {
		v.DefaultTDSMode = chargeMode(*r.DefaultTDSMode)
	}
	if r.DefaultTDSValue != nil {
		v.DefaultTDSValue = *r.DefaultTDSValue
	}
	if r.Phone != nil {
		v.Phone = r.Phone
	}
	if r.Email != nil {
		v.Email = r.Email
	}
	if r.Comment != nil {
		v.Comment = r.Comment
	}
	v.Version = r.Version
	return v
}

// --- Item ---

// CreateItemRequest for creating items.
type CreateItemRequest struct {
	Code         string      `json:"code"`
	Name         string      `json:"name" binding:"required"`
	Kind         string      `json:"kind" binding:"required"`
	Unit         string      `json:"unit"`
	HSN          *string     `json:"hsn"`
	SellingRate  types.Money `json:"sellingRate"`
	PurchaseRate types.Money `json:"purchaseRate"`
	TaxRate      float64     `json:"taxRate"`
	TaxName      string      `json:"taxName"`
	NonTaxable   bool        `json:"nonTaxable"`
	Description  *string     `json:"description"`
}

// ToItem maps the request to a new domain item.
func (r CreateItemRequest) ToItem() *item.Item {
	it := item.NewItem(r.Code, r.Name, item.Kind(r.Kind))
	it.Unit = r.Unit
	it.HSN = r.HSN
	it.SellingRate = r.SellingRate
	it.PurchaseRate = r.PurchaseRate
	it.TaxRate = r.TaxRate
	it.TaxName = r.TaxName
	it.NonTaxable = r.NonTaxable
	it.Description = r.Description
	return it
}

// UpdateItemRequest for updating items. Nil fields stay unchanged.
type UpdateItemRequest struct {
	Name         *string      `json:"name"`
	Kind         *string      `json:"kind"`
	Unit         *string      `json:"unit"`
	HSN          *string      `json:"hsn"`
	SellingRate  *types.Money `json:"sellingRate"`
	PurchaseRate *types.Money `json:"purchaseRate"`
	TaxRate      *float64     `json:"taxRate"`
	TaxName      *string      `json:"taxName"`
	NonTaxable   *bool        `json:"nonTaxable"`
	Description  *string      `json:"description"`
	Version      int          `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing item.
func (r UpdateItemRequest) ApplyTo(it *item.Item) *item.Item {
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Kind != nil {
		it.Kind = item.Kind(*r.Kind)
	}
	if r.Unit != nil {
		it.Unit = *r.Unit
	}
	if r.HSN != nil {
		it.HSN = r.HSN
	}
	if r.SellingRate != nil {
		it.SellingRate = *r.SellingRate
	}
	if r.PurchaseRate != nil {
		it.PurchaseRate = *r.PurchaseRate
	}
	if r.TaxRate != nil {
		it.TaxRate = *r.TaxRate
	}
	if r.TaxName != nil {
		it.TaxName = *r.TaxName
	}
	if r.NonTaxable != nil {
		it.NonTaxable = *r.NonTaxable
	}
	if r.Description != nil {
		it.Description = r.Description
	}
	it.Version = r.Version
	return it
}

// --- Organization ---

// CreateOrganizationRequest for creating organizations.
type CreateOrganizationRequest struct {
	Code      string            `json:"code"`
	Name      string            `json:"name" binding:"required"`
	LegalName *string           `json:"legalName"`
	GSTIN     *string           `json:"gstin"`
	State     string            `json:"state" binding:"required"`
	Address   entity.Attributes `json:"address"`
	Phone     *string           `json:"phone"`
	Email     *string           `json:"email"`
	IsDefault bool              `json:"isDefault"`
}

// ToOrganization maps the request to a new domain organization.
func (r CreateOrganizationRequest) ToOrganization() *organization.Organization {
	o := organization.NewOrganization(r.Code, r.Name, r.State)
	o.LegalName = r.LegalName
	o.GSTIN = r.GSTIN
	o.Address = r.Address
	o.Phone = r.Phone
	o.Email = r.Email
	o.IsDefault = r.IsDefault
	return o
}

// UpdateOrganizationRequest for updating organizations.
type UpdateOrganizationRequest struct {
	Name      *string           `json:"name"`
	LegalName *string           `json:"legalName"`
	GSTIN     *string           `json:"gstin"`
	State     *string           `json:"state"`
	Address   entity.Attributes `json:"address"`
	Phone     *string           `json:"phone"`
	Email     *string           `json:"email"`
	IsDefault *bool             `json:"isDefault"`
	Version   int               `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing organization.
func (r UpdateOrganizationRequest) ApplyTo(o *organization.Organization) *organization.Organization {
	if r.Name != nil {
		o.Name = *r.Name
	}
	if r.LegalName != nil {
		o.LegalName = r.LegalName
	}
	if r.GSTIN != nil {
		o.GSTIN = r.GSTIN
	}
	if r.State != nil {
		o.State = *r.State
	}
	if r.Address != nil {
		o.Address = r.Address
	}
	if r.Phone != nil {
		o.Phone = r.Phone
	}
	if r.Email != nil {
		o.Email = r.Email
	}
	if r.IsDefault != nil {
		o.IsDefault = *r.IsDefault
	}
	o.Version = r.Version
	return o
}
