package services

import (
	"context"
	"strings"
	"testing"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGroupServiceFixture() (ports.GroupService, *fakeGroupRepo, *fakeVoteRepo) {
	groupRepo := newFakeGroupRepo()
	voteRepo := newFakeVoteRepo()
	return NewGroupService(groupRepo, voteRepo, zap.NewNop()), groupRepo, voteRepo
}

func TestAddGroup(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	id, err := svc.AddGroup(context.Background(), "  Team A  ")
	require.NoError(t, err)

	group, err := svc.GetGroupByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, "Team A", group.Name)
	assert.Equal(t, 1, group.DisplayOrder)
}

func TestAddGroupAssignsSequentialOrder(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	for i, name := range []string{"A", "B", "C"} {
		id, err := svc.AddGroup(context.Background(), name)
		require.NoError(t, err)

		group, err := svc.GetGroupByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, i+1, group.DisplayOrder)
	}
}

func TestAddGroupInvalidName(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	for _, name := range []string{"", "   ", strings.Repeat("x", 51)} {
		_, err := svc.AddGroup(context.Background(), name)
		assert.ErrorIs(t, err, domain.ErrInvalidGroupName)
	}
}

func TestUpdateGroup(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	id, err := svc.AddGroup(context.Background(), "Old")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateGroup(context.Background(), id, "New"))

	group, err := svc.GetGroupByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New", group.Name)
}

func TestUpdateGroupNotFound(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	err := svc.UpdateGroup(context.Background(), uuid.New(), "Name")
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestDeleteGroup(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	id, err := svc.AddGroup(context.Background(), "Team A")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(context.Background(), id))

	group, err := svc.GetGroupByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestDeleteGroupWithVotes(t *testing.T) {
	svc, _, voteRepo := newGroupServiceFixture()

	id, err := svc.AddGroup(context.Background(), "Team A")
	require.NoError(t, err)

	vote := domain.Vote{ID: uuid.New(), GroupID: id, Score: 5, DeviceID: "device-" + uuid.NewString()}
	require.NoError(t, voteRepo.Insert(context.Background(), &vote))

	err = svc.DeleteGroup(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrGroupHasVotes)

	// group survives
	group, err := svc.GetGroupByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, group)
}

func TestUpdateGroupOrders(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	idA, err := svc.AddGroup(context.Background(), "A")
	require.NoError(t, err)
	idB, err := svc.AddGroup(context.Background(), "B")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateGroupOrders(context.Background(), map[uuid.UUID]int{
		idA: 2,
		idB: 1,
	}))

	groups, err := svc.GetAllGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Name)
	assert.Equal(t, "A", groups[1].Name)
}

func TestBulkCreateGroups(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	ids, err := svc.BulkCreateGroups(context.Background(), []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	groups, err := svc.GetAllGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}

func TestBulkCreateGroupsInvalidNameAborts(t *testing.T) {
	svc, _, _ := newGroupServiceFixture()

	_, err := svc.BulkCreateGroups(context.Background(), []string{"A", ""})
	assert.ErrorIs(t, err, domain.ErrInvalidGroupName)
}
