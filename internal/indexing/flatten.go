package indexing

import (
	"sort"
)

// Parents returns the set of ids referenced as a parent by any node.
func Parents(nodes map[string]MenuNode) map[string]struct{} {
	parents := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if node.ParentID != "" {
			parents[node.ParentID] = struct{}{}
		}
	}
	return parents
}

// Breadcrumbs walks from id up through its parents and returns the names
// root first. The walk stops at a node without parent, at a parent id that
// is not in nodes (dangling), or once maxDepth names are collected
// (truncated). Neither case is an error: the trail is simply shorter.
func Breadcrumbs(nodes map[string]MenuNode, id string, maxDepth int) (crumbs []string, truncated, dangling bool) {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}

	current, ok := nodes[id]
	if !ok {
		return nil, false, false
	}

	for {
		crumbs = append(crumbs, current.Name)

		if current.ParentID == "" {
			break
		}
		parent, ok := nodes[current.ParentID]
		if !ok {
			dangling = true
			break
		}
		if len(crumbs) >= maxDepth {
			truncated = true
			break
		}
		current = parent
	}

	// Collected leaf first, callers want root first
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs, truncated, dangling
}

// Flatten returns every leaf of the taxonomy with its breadcrumbs, ordered
// by id. The map key is authoritative for the id; MenuNode.ID is ignored.
func Flatten(nodes map[string]MenuNode, maxDepth int) []Leaf {
	parents := Parents(nodes)

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		if _, isParent := parents[id]; !isParent {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	leaves := make([]Leaf, 0, len(ids))
	for _, id := range ids {
		node := nodes[id]
		crumbs, truncated, dangling := Breadcrumbs(nodes, id, maxDepth)
		leaves = append(leaves, Leaf{
			ID:          id,
			Label:       node.Name,
			Breadcrumbs: crumbs,
			Description: node.Description,
			Truncated:   truncated,
			Dangling:    dangling,
		})
	}
	return leaves
}
