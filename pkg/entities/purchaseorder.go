package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/criteria"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Purchase order class, projection, type list and template ids.
var (
	PurchaseOrderClassID      = uuid.MustParse("2afe355c-24a7-b20f-36e3-253b7249818d")
	PurchaseOrderProjectionID = uuid.MustParse("f27daae2-280c-dd8b-24e7-9bdb5120d6d2")
	PurchaseOrderTypeListID   = uuid.MustParse("cdd4a2b1-5b6a-4a44-8f86-f0e2a3a0c9d3")
	PurchaseOrderTemplateID   = uuid.MustParse("7b3f0c2e-9d4a-4e61-a8b5-1c6d2e3f4a5b")
)

// Purchase order wire fields.
const (
	FieldPurchaseOrderNumber = "PurchaseOrderNumber"
	FieldPurchaseOrderType   = "PurchaseOrderType"
	FieldPurchaseOrderDate   = "PurchaseOrderDate"
	FieldAmount              = "Amount"
	FieldPurchaseOrderStatus = "PurchaseOrderStatus"
)

// PurchaseOrder is an asset-management purchase order.
type PurchaseOrder struct {
	*projection.Projection
}

// NewPurchaseOrder wraps p.
func NewPurchaseOrder(p *projection.Projection) *PurchaseOrder {
	return &PurchaseOrder{Projection: p}
}

// PurchaseOrderType is the registered descriptor for PurchaseOrder.
var PurchaseOrderType = projection.Register(projection.Type[*PurchaseOrder]{
	Name:         "PurchaseOrder",
	ProjectionID: PurchaseOrderProjectionID,
	ClassID:      PurchaseOrderClassID,
	New:          NewPurchaseOrder,
})

// Number returns the purchase order number.
func (po *PurchaseOrder) Number() string { return text(po.Projection, FieldPurchaseOrderNumber) }

// SetNumber sets the purchase order number.
func (po *PurchaseOrder) SetNumber(v string) error {
	return projection.SetPrimitive(po.Projection, FieldPurchaseOrderNumber, v, "Number")
}

// Type returns the purchase order type, or nil when unset.
func (po *PurchaseOrder) Type() *types.EnumValue {
	return projection.GetEnumeration(po.Projection, FieldPurchaseOrderType)
}

// SetType sets the purchase order type.
func (po *PurchaseOrder) SetType(v *types.EnumValue) error {
	return projection.SetEnumeration(po.Projection, FieldPurchaseOrderType, v, "Type")
}

// Status returns the purchase order status, or nil when unset.
func (po *PurchaseOrder) Status() *types.EnumValue {
	return projection.GetEnumeration(po.Projection, FieldPurchaseOrderStatus)
}

// SetStatus sets the purchase order status.
func (po *PurchaseOrder) SetStatus(v *types.EnumValue) error {
	return projection.SetEnumeration(po.Projection, FieldPurchaseOrderStatus, v, "Status")
}

// Date returns the order date; the zero time when unset.
func (po *PurchaseOrder) Date() (time.Time, error) {
	return projection.GetPrimitive[time.Time](po.Projection, FieldPurchaseOrderDate)
}

// SetDate sets the order date.
func (po *PurchaseOrder) SetDate(v time.Time) error {
	return projection.SetPrimitive(po.Projection, FieldPurchaseOrderDate, v, "Date")
}

// Amount returns the order total, or nil when the portal has none.
func (po *PurchaseOrder) Amount() (*float64, error) {
	return projection.GetPrimitive[*float64](po.Projection, FieldAmount)
}

// SetAmount sets the order total. A nil v stores null.
func (po *PurchaseOrder) SetAmount(v *float64) error {
	return projection.SetPrimitive(po.Projection, FieldAmount, v)
}

// PurchaseOrderByNumberAndType builds the criteria matching one order
// number of one order type.
func PurchaseOrderByNumberAndType(number string, orderType uuid.UUID) *criteria.Criteria {
	return criteria.New(PurchaseOrderProjectionID, criteria.And).
		Where(PurchaseOrderClassID, FieldPurchaseOrderNumber, criteria.Equal, number).
		Where(PurchaseOrderClassID, FieldPurchaseOrderType, criteria.Equal, types.FormatB(orderType))
}
