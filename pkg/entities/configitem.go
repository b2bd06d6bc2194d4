// Package entities declares the business entities exposed by the portal as
// thin property sets over projection.Projection. Each entity registers a
// projection.Type so it can be looked up by name.
package entities

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Class and projection ids for configuration items.
var (
	ConfigItemClassID      = uuid.MustParse("62f0be9f-ecea-e73c-f00d-3dd78a7422fc")
	ConfigItemProjectionID = uuid.MustParse("d1a0ba5a-3b7b-4c2d-9a6f-0c3a3ee8a8f1")
)

// FieldObjectStatus holds a configuration item's lifecycle status.
const FieldObjectStatus = "ObjectStatus"

// ConfigItem is the base of every configuration item.
type ConfigItem struct {
	*projection.Projection
}

// NewConfigItem wraps p.
func NewConfigItem(p *projection.Projection) *ConfigItem {
	return &ConfigItem{Projection: p}
}

// ConfigItemType is the registered descriptor for ConfigItem.
var ConfigItemType = projection.Register(projection.Type[*ConfigItem]{
	Name:         "ConfigItem",
	ProjectionID: ConfigItemProjectionID,
	ClassID:      ConfigItemClassID,
	New:          NewConfigItem,
})

// ObjectStatus returns the lifecycle status, or nil when unset.
func (c *ConfigItem) ObjectStatus() *types.EnumValue {
	return projection.GetEnumeration(c.Projection, FieldObjectStatus)
}

// SetObjectStatus sets the lifecycle status.
func (c *ConfigItem) SetObjectStatus(v *types.EnumValue) error {
	return projection.SetEnumeration(c.Projection, FieldObjectStatus, v)
}

// IsDeleted reports whether the item carries either soft-delete status.
func (c *ConfigItem) IsDeleted() bool {
	s := c.ObjectStatus()
	return s != nil && (s.ID == StatusPendingDelete.ID || s.ID == StatusDeleted.ID)
}
