package entities

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Hardware asset class and projection ids.
var (
	HardwareAssetClassID      = uuid.MustParse("c0c58e7f-7865-55cc-4600-753305b9be64")
	HardwareAssetProjectionID = uuid.MustParse("5e0fa3b6-0c3b-4f0f-9a4c-2d1b8f6e7a90")
)

// Hardware asset wire fields.
const (
	FieldAssetTag            = "AssetTag"
	FieldSerialNumber        = "SerialNumber"
	FieldManufacturer        = "Manufacturer"
	FieldModel               = "Model"
	FieldCost                = "Cost"
	FieldTargetUser          = "Target_HardwareAssetHasPrimaryUser"
	FieldHardwareAssetStatus = "HardwareAssetStatus"
	FieldPurchaseOrders      = "Target_HardwareAssetHasPurchaseOrder"
)

// HardwareAsset is a physical asset tracked as a configuration item.
type HardwareAsset struct {
	ConfigItem
}

// NewHardwareAsset wraps p.
func NewHardwareAsset(p *projection.Projection) *HardwareAsset {
	return &HardwareAsset{ConfigItem{Projection: p}}
}

// HardwareAssetType is the registered descriptor for HardwareAsset.
var HardwareAssetType = projection.Register(projection.Type[*HardwareAsset]{
	Name:         "HardwareAsset",
	ProjectionID: HardwareAssetProjectionID,
	ClassID:      HardwareAssetClassID,
	New:          NewHardwareAsset,
})

// AssetTag returns the asset tag.
func (h *HardwareAsset) AssetTag() string { return text(h.Projection, FieldAssetTag) }

// SerialNumber returns the serial number.
func (h *HardwareAsset) SerialNumber() string { return text(h.Projection, FieldSerialNumber) }

// Manufacturer returns the manufacturer name.
func (h *HardwareAsset) Manufacturer() string { return text(h.Projection, FieldManufacturer) }

// Model returns the model name.
func (h *HardwareAsset) Model() string { return text(h.Projection, FieldModel) }

// SetAssetTag sets the asset tag.
func (h *HardwareAsset) SetAssetTag(v string) error {
	return projection.SetPrimitive(h.Projection, FieldAssetTag, v)
}

// SetSerialNumber sets the serial number.
func (h *HardwareAsset) SetSerialNumber(v string) error {
	return projection.SetPrimitive(h.Projection, FieldSerialNumber, v)
}

// SetManufacturer sets the manufacturer name.
func (h *HardwareAsset) SetManufacturer(v string) error {
	return projection.SetPrimitive(h.Projection, FieldManufacturer, v)
}

// SetModel sets the model name.
func (h *HardwareAsset) SetModel(v string) error {
	return projection.SetPrimitive(h.Projection, FieldModel, v)
}

// Cost returns the purchase cost; 0 when unset.
func (h *HardwareAsset) Cost() (float64, error) {
	return projection.GetPrimitive[float64](h.Projection, FieldCost)
}

// SetCost sets the purchase cost.
func (h *HardwareAsset) SetCost(v float64) error {
	return projection.SetPrimitive(h.Projection, FieldCost, v)
}

// Status returns the hardware asset status, or nil when unset.
func (h *HardwareAsset) Status() *types.EnumValue {
	return projection.GetEnumeration(h.Projection, FieldHardwareAssetStatus)
}

// SetStatus sets the hardware asset status.
func (h *HardwareAsset) SetStatus(v *types.EnumValue) error {
	return projection.SetEnumeration(h.Projection, FieldHardwareAssetStatus, v, "Status")
}

// PrimaryUser returns the asset's primary user, or nil.
func (h *HardwareAsset) PrimaryUser() UserRef {
	return userRefAt(h.Projection, FieldTargetUser)
}

// SetPrimaryUser replaces the primary user. A nil ref clears it.
func (h *HardwareAsset) SetPrimaryUser(ref UserRef) error {
	return setUserRefAt(h.Projection, FieldTargetUser, ref, "PrimaryUser")
}

// PurchaseOrders is the live list of purchase orders the asset was bought
// under.
func (h *HardwareAsset) PurchaseOrders() *projection.RelatedList[*PurchaseOrder] {
	return projection.NewRelatedList(h.Projection, FieldPurchaseOrders, NewPurchaseOrder, "PurchaseOrders")
}
