package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Incident class, projection and template ids.
var (
	IncidentClassID      = uuid.MustParse("a604b942-4c7b-2fb2-28dc-61dc6f465c68")
	IncidentProjectionID = uuid.MustParse("2d460edd-d5db-bc8c-5be7-45b050cba652")
	IncidentTemplateID   = uuid.MustParse("a3e4a5c6-4f2e-4d1b-9a33-6c1f1a0b7e21")
)

// Incident wire fields.
const (
	FieldIncidentID         = "Id"
	FieldTitle              = "Title"
	FieldDescription        = "Description"
	FieldStatus             = "Status"
	FieldUrgency            = "Urgency"
	FieldImpact             = "Impact"
	FieldCreatedDate        = "CreatedDate"
	FieldAffectedUser       = "RequestedWorkItem"
	FieldAssignedTo         = "AssignedWorkItem"
	FieldRelatedConfigItems = "RelatesToConfigItem"
)

// Incident is a service desk incident work item.
type Incident struct {
	*projection.Projection
}

// NewIncident wraps p.
func NewIncident(p *projection.Projection) *Incident {
	return &Incident{Projection: p}
}

// IncidentType is the registered descriptor for Incident.
var IncidentType = projection.Register(projection.Type[*Incident]{
	Name:         "Incident",
	ProjectionID: IncidentProjectionID,
	ClassID:      IncidentClassID,
	New:          NewIncident,
})

// ID returns the human-readable work item id, such as IR1234.
func (i *Incident) ID() string { return text(i.Projection, FieldIncidentID) }

// Title returns the incident title.
func (i *Incident) Title() string { return text(i.Projection, FieldTitle) }

// Description returns the incident description.
func (i *Incident) Description() string { return text(i.Projection, FieldDescription) }

// SetTitle sets the incident title.
func (i *Incident) SetTitle(v string) error {
	return projection.SetPrimitive(i.Projection, FieldTitle, v)
}

// SetDescription sets the incident description.
func (i *Incident) SetDescription(v string) error {
	return projection.SetPrimitive(i.Projection, FieldDescription, v)
}

// CreatedDate returns when the incident was opened.
func (i *Incident) CreatedDate() (time.Time, error) {
	return projection.GetPrimitive[time.Time](i.Projection, FieldCreatedDate)
}

// Status returns the incident status, or nil when unset.
func (i *Incident) Status() *types.EnumValue {
	return projection.GetEnumeration(i.Projection, FieldStatus)
}

// SetStatus sets the incident status.
func (i *Incident) SetStatus(v *types.EnumValue) error {
	return projection.SetEnumeration(i.Projection, FieldStatus, v)
}

// Urgency returns the incident urgency, or nil when unset.
func (i *Incident) Urgency() *types.EnumValue {
	return projection.GetEnumeration(i.Projection, FieldUrgency)
}

// SetUrgency sets the incident urgency.
func (i *Incident) SetUrgency(v *types.EnumValue) error {
	return projection.SetEnumeration(i.Projection, FieldUrgency, v)
}

// Impact returns the incident impact, or nil when unset.
func (i *Incident) Impact() *types.EnumValue {
	return projection.GetEnumeration(i.Projection, FieldImpact)
}

// SetImpact sets the incident impact.
func (i *Incident) SetImpact(v *types.EnumValue) error {
	return projection.SetEnumeration(i.Projection, FieldImpact, v)
}

// AffectedUser returns the user the incident was raised for, or nil.
func (i *Incident) AffectedUser() UserRef {
	return userRefAt(i.Projection, FieldAffectedUser)
}

// SetAffectedUser replaces the affected user. A nil ref clears it.
func (i *Incident) SetAffectedUser(ref UserRef) error {
	return setUserRefAt(i.Projection, FieldAffectedUser, ref, "AffectedUser")
}

// AssignedTo returns the analyst the incident is assigned to, or nil.
func (i *Incident) AssignedTo() UserRef {
	return userRefAt(i.Projection, FieldAssignedTo)
}

// SetAssignedTo replaces the assignee. A nil ref clears it.
func (i *Incident) SetAssignedTo(ref UserRef) error {
	return setUserRefAt(i.Projection, FieldAssignedTo, ref, "AssignedTo")
}

// RelatedConfigItems is the live list of configuration items the incident
// relates to.
func (i *Incident) RelatedConfigItems() *projection.RelatedList[*ConfigItem] {
	return projection.NewRelatedList(i.Projection, FieldRelatedConfigItems, NewConfigItem, "RelatedConfigItems")
}
