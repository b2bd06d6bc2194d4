package entities

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// User class and projection ids.
var (
	UserClassID      = uuid.MustParse("eca3c52a-f273-5cdc-f165-3eb95a2b26cf")
	UserProjectionID = uuid.MustParse("490ab845-b14c-1d91-c39f-bb9ea3b2b8d0")
)

// User wire fields.
const (
	FieldFirstName = "FirstName"
	FieldLastName  = "LastName"
	FieldUserName  = "UserName"
	FieldDomain    = "Domain"
	FieldEmail     = "Email"
)

// UserRef is a user known either partially (id and display name, as the
// portal embeds users inside other objects) or in full. Only PartialUser
// and *User implement it.
type UserRef interface {
	UserID() uuid.UUID
	UserDisplayName() string
	userRef()
}

// PartialUser is the id and name of a user whose other attributes were
// not fetched. ExpandUser replaces it with a *User.
type PartialUser struct {
	ID   uuid.UUID
	Name string
}

// UserID returns the user's BaseId.
func (u PartialUser) UserID() uuid.UUID { return u.ID }

// UserDisplayName returns the user's display name.
func (u PartialUser) UserDisplayName() string { return u.Name }

func (PartialUser) userRef() {}

// User is a fully loaded user.
type User struct {
	*projection.Projection
}

// NewUser wraps p.
func NewUser(p *projection.Projection) *User {
	return &User{Projection: p}
}

// UserType is the registered descriptor for User.
var UserType = projection.Register(projection.Type[*User]{
	Name:         "User",
	ProjectionID: UserProjectionID,
	ClassID:      UserClassID,
	New:          NewUser,
})

// UserID returns the user's BaseId, or the empty GUID before creation.
func (u *User) UserID() uuid.UUID {
	id, _ := types.ParseGUID(u.BaseID())
	return id
}

// UserDisplayName returns the user's display name.
func (u *User) UserDisplayName() string { return u.DisplayName() }

func (*User) userRef() {}

// FirstName returns the user's given name.
func (u *User) FirstName() string { return text(u.Projection, FieldFirstName) }

// LastName returns the user's family name.
func (u *User) LastName() string { return text(u.Projection, FieldLastName) }

// UserName returns the login name.
func (u *User) UserName() string { return text(u.Projection, FieldUserName) }

// Domain returns the login domain.
func (u *User) Domain() string { return text(u.Projection, FieldDomain) }

// Email returns the user's email address.
func (u *User) Email() string { return text(u.Projection, FieldEmail) }

// SetFirstName sets the given name.
func (u *User) SetFirstName(v string) error {
	return projection.SetPrimitive(u.Projection, FieldFirstName, v)
}

// SetLastName sets the family name.
func (u *User) SetLastName(v string) error {
	return projection.SetPrimitive(u.Projection, FieldLastName, v)
}

// SetEmail sets the email address.
func (u *User) SetEmail(v string) error {
	return projection.SetPrimitive(u.Projection, FieldEmail, v)
}

// userRefAt reads the user nested in field. The portal embeds users with
// only BaseId and DisplayName; those come back as PartialUser. A nested
// record carrying a UserName is returned as a read-only *User.
func userRefAt(p *projection.Projection, field string) UserRef {
	u, ok := projection.GetRelated(p, field, NewUser)
	if !ok {
		return nil
	}
	if u.Current().Has(FieldUserName) {
		return u
	}
	return PartialUser{ID: u.UserID(), Name: u.DisplayName()}
}

// setUserRefAt stores ref in field. A partial user is written as the
// BaseId and DisplayName pair the portal accepts for relationship writes.
// A nil ref, including a nil *User, clears the field.
func setUserRefAt(p *projection.Projection, field string, ref UserRef, publicName string) error {
	switch u := ref.(type) {
	case nil:
		return projection.ClearRelated(p, field, publicName)
	case *User:
		if u == nil || u.Projection == nil {
			return projection.ClearRelated(p, field, publicName)
		}
		return projection.SetRelated(p, field, u, publicName)
	default:
		rec := types.NewRecord()
		rec.Set(projection.FieldBaseID, types.String(types.FormatD(ref.UserID())))
		rec.Set(projection.FieldDisplayName, types.String(ref.UserDisplayName()))
		return projection.SetRelated(p, field, projection.New(rec), publicName)
	}
}

// ExpandUser returns the full user behind ref. A *User is returned as is;
// a PartialUser is fetched by id.
func ExpandUser(ctx context.Context, c *portal.Client, ref UserRef) (*User, error) {
	if u, ok := ref.(*User); ok {
		if u == nil {
			return nil, fmt.Errorf("expand user: nil user: %w", types.ErrNotFound)
		}
		return u, nil
	}
	if ref == nil {
		return nil, fmt.Errorf("expand user: nil ref: %w", types.ErrNotFound)
	}
	return portal.QueryByID(ctx, c, UserType, ref.UserID())
}

func text(p *projection.Projection, field string) string {
	s, _ := projection.GetPrimitive[string](p, field)
	return s
}
