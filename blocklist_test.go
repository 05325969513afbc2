package promptview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() BlockList {
	wrapper := NewBlock().WithTags("wrapper")
	wrapper.AddChild(NewBlock("nested system").WithTags("system"))

	return BlockList{
		NewBlock("sys").WithTags("system"),
		NewBlock("q1").WithRole(RoleUser),
		NewBlock("a1").WithRole(RoleAssistant),
		NewBlock("pivot here").WithTags("pivot"),
		NewBlock("q2").WithRole(RoleUser),
		wrapper,
	}
}

func TestBlockList_FindRecursesWithoutDescendingIntoMatches(t *testing.T) {
	l := historyFixture()

	found := l.Find("system")
	require.Len(t, found, 2)
	assert.Equal(t, "sys", found[0].Content().Inline())
	assert.Equal(t, "nested system", found[1].Content().Inline())

	// Roles match too.
	users := l.Find("user")
	require.Len(t, users, 2)
}

func TestBlockList_FilterIsShallow(t *testing.T) {
	l := historyFixture()

	rest := l.Filter("system", "pivot")
	require.Len(t, rest, 4)
	// Nested system stays: Filter does not descend.
	assert.True(t, rest[3].HasTag("wrapper"))
}

func TestBlockList_Split(t *testing.T) {
	l := historyFixture()

	before, pivot, after, err := l.Split("pivot")
	require.NoError(t, err)
	assert.Len(t, before, 3)
	assert.True(t, pivot.HasTag("pivot"))
	assert.Len(t, after, 2)

	_, _, _, err = l.Split("absent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPivotNotFound)
}

func TestBlockList_FindBeforeAndAfter(t *testing.T) {
	l := historyFixture()

	before := l.FindBefore("pivot")
	assert.Len(t, before, 3)

	after, err := l.FindAfter("pivot")
	require.NoError(t, err)
	assert.Len(t, after, 2)

	// Absent pivot: FindBefore returns everything, FindAfter errors.
	assert.Len(t, l.FindBefore("absent"), len(l))
	_, err = l.FindAfter("absent")
	assert.ErrorIs(t, err, ErrPivotNotFound)
}

func TestBlockList_Group(t *testing.T) {
	l := BlockList{NewBlock("a"), NewBlock("b")}

	wrapper := l.Group(RoleUser, "history")
	assert.True(t, wrapper.IsWrapper())
	assert.Equal(t, RoleUser, wrapper.Role())
	assert.True(t, wrapper.HasTag("history"))
	require.Len(t, wrapper.Children(), 2)
	assert.Same(t, wrapper, wrapper.Children()[0].Parent())

	assert.Nil(t, BlockList{}.GroupOrNil(RoleUser))
	assert.NotNil(t, l.GroupOrNil(RoleUser))
}

func TestBlockList_SliceClampsBounds(t *testing.T) {
	l := BlockList{NewBlock("a"), NewBlock("b"), NewBlock("c")}

	assert.Len(t, l.Slice(1, 3), 2)
	assert.Len(t, l.Slice(-5, 2), 2)
	assert.Len(t, l.Slice(0, 99), 3)
	assert.Nil(t, l.Slice(2, 1))
}

func TestBlockList_Roles(t *testing.T) {
	l := BlockList{
		NewBlock("a").WithRole(RoleUser),
		NewBlock("b").WithRole(RoleAssistant),
		NewBlock("c").WithRole(RoleUser),
		NewBlock("d"),
	}
	assert.Equal(t, []Role{RoleUser, RoleAssistant}, l.Roles())
}
