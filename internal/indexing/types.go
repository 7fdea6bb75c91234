package indexing

// MenuNode is one entry of the raw menu taxonomy. ParentID is empty for roots.
type MenuNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// Leaf is a menu node that no other node points to as its parent, annotated
// with its breadcrumb trail and the normalized texts it is searched by.
type Leaf struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Breadcrumbs    []string `json:"breadcrumbs"` // root first, leaf last
	Description    string   `json:"description,omitempty"`
	Path           string   `json:"path"`             // breadcrumbs joined by PathSeparator
	LeafWithParent string   `json:"leaf_with_parent"` // last two breadcrumbs joined by ParentSeparator
	Variants       Variants `json:"variants"`
	Truncated      bool     `json:"truncated,omitempty"` // ancestry cut at the depth cap
	Dangling       bool     `json:"dangling,omitempty"`  // ancestry stopped at an unknown parent id
}

// Variants are the normalized forms of a leaf's searchable texts.
type Variants struct {
	Label          string   `json:"label"`
	Path           string   `json:"path"`
	LeafWithParent string   `json:"leaf_with_parent"`
	Description    string   `json:"description,omitempty"`
	Abbreviations  []string `json:"abbreviations,omitempty"` // keys whose expansion occurs in the path
}

// All returns the distinct non-empty variants in a fixed order: label, path,
// leaf-with-parent, description, then abbreviation keys.
func (v Variants) All() []string {
	out := make([]string, 0, 4+len(v.Abbreviations))
	seen := make(map[string]struct{}, cap(out))

	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(v.Label)
	add(v.Path)
	add(v.LeafWithParent)
	add(v.Description)
	for _, a := range v.Abbreviations {
		add(a)
	}
	return out
}
