package portal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

func loaded(t *testing.T, js string) *item {
	t.Helper()
	rec, err := types.ParseRecord([]byte(js))
	require.NoError(t, err)
	return wrapItem(projection.Load(rec))
}

func TestCommitPreconditionOrder(t *testing.T) {
	ctx := context.Background()
	owner := loaded(t, `{"Owner":{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001"}}`)
	ro, ok := projection.GetRelated(owner.Projection, "Owner", wrapItem)
	require.True(t, ok)

	tests := []struct {
		name    string
		valid   bool
		entity  projection.Entity
		wantErr error
	}{
		{"invalid session wins over read-only", false, ro, types.ErrInvalidSession},
		{"read-only wins over not dirty", true, ro, types.ErrReadOnly},
		{"clean object is not committed", true, owner, types.ErrNotDirty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSession{valid: tt.valid}
			err := NewClient(s).Commit(ctx, tt.entity)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, s.calls)
		})
	}
}

func TestCommitUpdate(t *testing.T) {
	it := loaded(t, `{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001","Title":"a"}`)
	require.NoError(t, projection.SetPrimitive(it.Projection, "Title", "b"))
	s := newFake(reply{body: `{"success":true,"BaseId":"aaaaaaaa-0000-0000-0000-000000000001"}`})

	require.NoError(t, NewClient(s).Commit(context.Background(), it))

	require.Len(t, s.calls, 1)
	assert.Equal(t, "POST", s.calls[0].method)
	assert.Equal(t, PathCommit, s.calls[0].path)
	assert.Equal(t, `{"formJson":{"isDirty":true,`+
		`"current":{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001","Title":"b"},`+
		`"original":{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001","Title":"a"}}}`, s.calls[0].body)
	assert.False(t, it.IsDirty())
	assert.Empty(t, it.Changes())
	assert.Equal(t, "a", it.Original().Text("Title"), "original of a loaded object is never replaced")
}

func TestCommitCreationWritesBackBaseID(t *testing.T) {
	it := wrapItem(projection.New(nil))
	require.NoError(t, projection.SetPrimitive(it.Projection, "Title", "new"))
	s := newFake(reply{body: `{"success":true,"BaseId":"bbbbbbbb-0000-0000-0000-000000000002"}`})

	require.NoError(t, NewClient(s).Commit(context.Background(), it))

	assert.Equal(t, `{"formJson":{"isDirty":true,"current":{"Title":"new"},"original":null}}`, s.calls[0].body)
	assert.Equal(t, "bbbbbbbb-0000-0000-0000-000000000002", it.BaseID())
	require.NotNil(t, it.Original())
	assert.Equal(t, "bbbbbbbb-0000-0000-0000-000000000002", it.Original().Text(projection.FieldBaseID))
	assert.False(t, it.IsNew())
}

func TestCommitFailureIsAPIError(t *testing.T) {
	it := wrapItem(projection.New(nil))
	require.NoError(t, projection.SetPrimitive(it.Projection, "Title", "new"))
	s := newFake(reply{body: `{"success":false,"exception":"Object reference not set to an instance of an object."}`})

	err := NewClient(s).Commit(context.Background(), it)

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrAPI)
	var apiErr *types.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Object reference not set to an instance of an object.", apiErr.Message)
	assert.True(t, it.IsDirty(), "failed commit keeps pending changes")
	assert.Nil(t, it.Original())
	assert.Len(t, s.calls, 1, "no retry")
}

func TestCommitRejectsNonJSONResponse(t *testing.T) {
	it := wrapItem(projection.New(nil))
	require.NoError(t, projection.SetPrimitive(it.Projection, "Title", "x"))
	err := NewClient(newFake(reply{body: `<html>`})).Commit(context.Background(), it)
	assert.ErrorIs(t, err, types.ErrInvalidRecord)
}

func TestSoftDelete(t *testing.T) {
	pendingDelete := types.NewEnumValue(uuid.MustParse("47101e64-237f-12c8-e3f5-ec5a665412fb"), "Pending Delete", "System.ConfigItem.ObjectStatusEnum.PendingDelete", false, false, 0)
	it := loaded(t, `{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001","ObjectStatus":{"Id":"acdcedb7-100c-8c91-d664-4629a218bd94","Name":"Active"}}`)
	s := newFake(reply{body: `{"success":true}`})

	require.NoError(t, NewClient(s).SoftDelete(context.Background(), it, "ObjectStatus", pendingDelete))

	assert.Contains(t, s.calls[0].body, `"current":{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001","ObjectStatus":{"Id":"47101e64-237f-12c8-e3f5-ec5a665412fb","Name":"Pending Delete"}}`)
	got := projection.GetEnumeration(it.Projection, "ObjectStatus")
	require.NotNil(t, got)
	assert.Equal(t, pendingDelete.ID, got.ID)
	assert.False(t, it.IsDirty())
}

func TestSoftDeleteReadOnly(t *testing.T) {
	owner := loaded(t, `{"Owner":{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001"}}`)
	ro, _ := projection.GetRelated(owner.Projection, "Owner", wrapItem)
	s := newFake()

	err := NewClient(s).SoftDelete(context.Background(), ro, "ObjectStatus", types.EnumValue{ID: uuid.New()})
	assert.ErrorIs(t, err, types.ErrReadOnly)
	assert.Empty(t, s.calls)
}
