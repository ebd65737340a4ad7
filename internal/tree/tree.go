// Package tree locates nodes in a nested subtask tree by index path and
// rebuilds the tree around a change without touching the input.
//
// Every function here is pure. The slices on the way from the root to the
// target are freshly allocated; siblings off that path are copied by value
// and keep sharing their own child slices.
package tree

import "github.com/tgienger/tasktree/internal/models"

// Path is a root-relative list of sibling indices
type Path []int

// Child returns a new path one level below p ending at index i
func (p Path) Child(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, i)
}

// Parent returns p without its last index. The root path is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Update replaces the node addressed by path with fn(node).
// An empty path or an index out of range at any depth leaves items unchanged.
func Update(items []models.Subtask, path Path, fn func(models.Subtask) models.Subtask) []models.Subtask {
	return update(items, path, 0, fn)
}

func update(items []models.Subtask, path Path, depth int, fn func(models.Subtask) models.Subtask) []models.Subtask {
	if depth >= len(path) {
		return items
	}
	idx := path[depth]
	if idx < 0 || idx >= len(items) {
		return items
	}

	out := make([]models.Subtask, len(items))
	copy(out, items)
	if depth == len(path)-1 {
		out[idx] = fn(out[idx])
	} else {
		out[idx].Subtasks = update(out[idx].Subtasks, path, depth+1, fn)
	}
	return out
}

// Insert appends node to the children of the node addressed by path.
// An empty path appends to items itself.
func Insert(items []models.Subtask, path Path, node models.Subtask) []models.Subtask {
	return insert(items, path, 0, node)
}

func insert(items []models.Subtask, path Path, depth int, node models.Subtask) []models.Subtask {
	if depth >= len(path) {
		out := make([]models.Subtask, len(items), len(items)+1)
		copy(out, items)
		return append(out, node)
	}
	idx := path[depth]
	if idx < 0 || idx >= len(items) {
		return items
	}

	out := make([]models.Subtask, len(items))
	copy(out, items)
	out[idx].Subtasks = insert(out[idx].Subtasks, path, depth+1, node)
	return out
}

// Remove drops the node addressed by path together with its subtree.
// An empty path or an out of range index leaves items unchanged.
func Remove(items []models.Subtask, path Path) []models.Subtask {
	if len(path) == 0 {
		return items
	}
	last := path[len(path)-1]
	parent := path.Parent()

	if len(parent) == 0 {
		return without(items, last)
	}
	return update(items, parent, 0, func(n models.Subtask) models.Subtask {
		n.Subtasks = without(n.Subtasks, last)
		return n
	})
}

func without(items []models.Subtask, idx int) []models.Subtask {
	if idx < 0 || idx >= len(items) {
		return items
	}
	out := make([]models.Subtask, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

// Get returns the node addressed by path
func Get(items []models.Subtask, path Path) (models.Subtask, bool) {
	if len(path) == 0 {
		return models.Subtask{}, false
	}
	var node models.Subtask
	for _, idx := range path {
		if idx < 0 || idx >= len(items) {
			return models.Subtask{}, false
		}
		node = items[idx]
		items = node.Subtasks
	}
	return node, true
}

// IndexOf returns the position of the direct child with the given id, or -1
func IndexOf(items []models.Subtask, id string) int {
	for i, s := range items {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Walk visits every node in pre-order. Returning false from fn skips the
// node's children.
func Walk(items []models.Subtask, fn func(path Path, node models.Subtask) bool) {
	walk(items, nil, fn)
}

func walk(items []models.Subtask, prefix Path, fn func(Path, models.Subtask) bool) {
	for i, node := range items {
		p := prefix.Child(i)
		if fn(p, node) {
			walk(node.Subtasks, p, fn)
		}
	}
}
