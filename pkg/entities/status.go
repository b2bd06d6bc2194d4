package entities

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// ObjectStatus members used for configuration item lifecycle and soft
// delete. A soft delete sets the status to StatusPendingDelete (the server
// purges later) or StatusDeleted and commits.
var (
	ObjectStatusListID = uuid.MustParse("4f11b2d8-6a7b-4c3e-9d1f-3e0b5a9c7d21")

	StatusActive = types.NewEnumValue(
		uuid.MustParse("acdcedb7-100c-8c91-d664-4629a218bd94"),
		"Active", "System.ConfigItem.ObjectStatusEnum.Active", false, false, 0)
	StatusPendingDelete = types.NewEnumValue(
		uuid.MustParse("47101e64-237f-12c8-e3f5-ec5a665412fb"),
		"Pending Delete", "System.ConfigItem.ObjectStatusEnum.PendingDelete", false, false, 0)
	StatusDeleted = types.NewEnumValue(
		uuid.MustParse("3a0c3a5e-5c1b-4f9e-8d0e-4b2c2f7e1d6a"),
		"Deleted", "System.ConfigItem.ObjectStatusEnum.Deleted", false, false, 0)
)

// Incident status members.
var (
	IncidentStatusListID = uuid.MustParse("89b34802-671e-e422-5e38-7dae9a413ef8")

	IncidentActive = types.NewEnumValue(
		uuid.MustParse("5e2d3932-ca6d-1515-7310-6f58584df73e"),
		"Active", "IncidentStatusEnum.Active", false, false, 0)
	IncidentPending = types.NewEnumValue(
		uuid.MustParse("b6679968-e84e-96fa-1fec-8cd4ab39c3de"),
		"Pending", "IncidentStatusEnum.Active.Pending", false, false, 0)
	IncidentResolved = types.NewEnumValue(
		uuid.MustParse("2b8830b6-59f0-f574-9c2a-f4b4682f1681"),
		"Resolved", "IncidentStatusEnum.Resolved", false, false, 0)
	IncidentClosed = types.NewEnumValue(
		uuid.MustParse("bd0ae7c4-3315-2eb3-7933-82dfc482dbaf"),
		"Closed", "IncidentStatusEnum.Closed", false, false, 0)
)

// DeleteStatus returns the soft-delete sentinel: StatusPendingDelete when
// pending is true, StatusDeleted otherwise.
func DeleteStatus(pending bool) types.EnumValue {
	if pending {
		return StatusPendingDelete
	}
	return StatusDeleted
}
