package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tasktree/internal/models"
)

func node(id string, children ...models.Subtask) models.Subtask {
	return models.Subtask{ID: id, Title: id, Status: models.StatusPending, Subtasks: children}
}

// sample builds
//
//	a
//	├─ a0
//	│  └─ a00
//	└─ a1
//	   ├─ a10
//	   └─ a11
//	b
func sample() []models.Subtask {
	return []models.Subtask{
		node("a",
			node("a0", node("a00")),
			node("a1", node("a10"), node("a11")),
		),
		node("b"),
	}
}

func setStatus(s models.Status) func(models.Subtask) models.Subtask {
	return func(n models.Subtask) models.Subtask {
		n.Status = s
		return n
	}
}

func TestUpdateChangesOnlyTarget(t *testing.T) {
	in := sample()
	out := Update(in, Path{0, 1}, setStatus(models.StatusCompleted))

	assert.Equal(t, models.StatusCompleted, out[0].Subtasks[1].Status)
	assert.Equal(t, models.StatusPending, out[0].Subtasks[0].Status)
	assert.Equal(t, models.StatusPending, out[0].Status)

	// children of the target are untouched
	assert.Equal(t, in[0].Subtasks[1].Subtasks, out[0].Subtasks[1].Subtasks)
	// input is not mutated
	assert.Equal(t, sample(), in)
}

func TestUpdateSharesUntouchedSiblings(t *testing.T) {
	in := sample()
	out := Update(in, Path{0, 1, 0}, setStatus(models.StatusInProgress))

	// a0 keeps its own child slice
	assert.Same(t, &in[0].Subtasks[0].Subtasks[0], &out[0].Subtasks[0].Subtasks[0])
	// the path from root to target is rebuilt
	assert.NotSame(t, &in[0], &out[0])
	assert.NotSame(t, &in[0].Subtasks[0], &out[0].Subtasks[0])
	assert.Equal(t, models.StatusPending, in[0].Subtasks[1].Subtasks[0].Status)
}

func TestUpdateEmptyPathIsNoop(t *testing.T) {
	in := sample()
	out := Update(in, nil, setStatus(models.StatusCompleted))
	assert.Equal(t, in, out)
}

func TestUpdateOutOfRange(t *testing.T) {
	for _, p := range []Path{{5}, {0, 9}, {0, 1, 7}, {-1}, {1, 0}} {
		in := sample()
		out := Update(in, p, setStatus(models.StatusCompleted))
		assert.Equal(t, sample(), out, "path %v", p)
	}
}

func TestInsertAtRoot(t *testing.T) {
	in := sample()
	out := Insert(in, nil, node("c"))

	require.Len(t, out, 3)
	assert.Equal(t, "c", out[2].ID)
	assert.Len(t, in, 2)
}

func TestInsertNested(t *testing.T) {
	in := sample()
	out := Insert(in, Path{0, 0}, node("a01"))

	require.Len(t, out[0].Subtasks[0].Subtasks, 2)
	assert.Equal(t, "a01", out[0].Subtasks[0].Subtasks[1].ID)
	assert.Len(t, in[0].Subtasks[0].Subtasks, 1)
	assert.Equal(t, in[0].Subtasks[1], out[0].Subtasks[1])
	assert.Equal(t, in[1], out[1])
}

func TestInsertDoesNotWriteSpareCapacity(t *testing.T) {
	backing := make([]models.Subtask, 1, 4)
	backing[0] = node("x")

	first := Insert(backing, nil, node("y"))
	second := Insert(backing, nil, node("z"))

	assert.Equal(t, "y", first[1].ID)
	assert.Equal(t, "z", second[1].ID)
}

func TestInsertOutOfRange(t *testing.T) {
	in := sample()
	out := Insert(in, Path{3}, node("c"))
	assert.Equal(t, sample(), out)
}

func TestRemove(t *testing.T) {
	in := sample()

	out := Remove(in, Path{0, 1, 0})
	require.Len(t, out[0].Subtasks[1].Subtasks, 1)
	assert.Equal(t, "a11", out[0].Subtasks[1].Subtasks[0].ID)

	out = Remove(in, Path{1})
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)

	assert.Equal(t, sample(), in)
	assert.Equal(t, sample(), Remove(in, Path{0, 4}))
	assert.Equal(t, sample(), Remove(in, nil))
}

func TestGet(t *testing.T) {
	in := sample()

	n, ok := Get(in, Path{0, 1, 1})
	require.True(t, ok)
	assert.Equal(t, "a11", n.ID)

	_, ok = Get(in, Path{0, 2})
	assert.False(t, ok)
	_, ok = Get(in, nil)
	assert.False(t, ok)
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, IndexOf(sample(), "b"))
	assert.Equal(t, -1, IndexOf(sample(), "a0"))
}

func TestWalkPreOrder(t *testing.T) {
	var ids []string
	var paths []Path
	Walk(sample(), func(p Path, n models.Subtask) bool {
		ids = append(ids, n.ID)
		paths = append(paths, p)
		return true
	})

	assert.Equal(t, []string{"a", "a0", "a00", "a1", "a10", "a11", "b"}, ids)
	assert.Equal(t, Path{0, 1, 1}, paths[5])
	assert.Equal(t, Path{1}, paths[6])
}

func TestWalkSkipChildren(t *testing.T) {
	var ids []string
	Walk(sample(), func(p Path, n models.Subtask) bool {
		ids = append(ids, n.ID)
		return n.ID != "a"
	})
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 8)
	a := base.Child(1)
	b := base.Child(2)
	assert.Equal(t, Path{0, 1}, a)
	assert.Equal(t, Path{0, 2}, b)
	assert.True(t, a.Parent().Equal(base))
}
