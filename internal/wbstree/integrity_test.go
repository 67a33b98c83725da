package wbstree

import (
	"testing"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrphans(t *testing.T) {
	nodes := []*domain.WBSNode{
		node("A", ""),
		node("B", "A"),
		node("C", "ghost"),
	}
	orphans := Orphans(nodes)
	require.Len(t, orphans, 1)
	assert.Equal(t, "C", orphans[0].ID)
}

func TestFindCycle(t *testing.T) {
	assert.Nil(t, FindCycle(abc()))

	cyclic := []*domain.WBSNode{
		node("A", ""),
		node("X", "Z"),
		node("Y", "X"),
		node("Z", "Y"),
	}
	cycle := FindCycle(cyclic)
	assert.ElementsMatch(t, []string{"X", "Y", "Z"}, cycle)

	self := []*domain.WBSNode{node("S", "S")}
	assert.Equal(t, []string{"S"}, FindCycle(self))
}

func TestPath(t *testing.T) {
	path := Path(abc(), "C")
	require.Len(t, path, 3)
	assert.Equal(t, "A", path[0].ID)
	assert.Equal(t, "C", path[2].ID)

	assert.Empty(t, Path(abc(), "missing"))

	cyclic := []*domain.WBSNode{node("X", "Y"), node("Y", "X")}
	assert.Len(t, Path(cyclic, "X"), 2)
}
