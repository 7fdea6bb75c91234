package indexing

const (
	// DefaultMaxDepth caps how many breadcrumbs are collected for one leaf.
	// It only exists to stop walking cyclic parent chains; it is not a limit
	// on real taxonomy depth.
	DefaultMaxDepth = 8

	// PathSeparator joins breadcrumbs into a leaf's full path
	PathSeparator = " → "

	// ParentSeparator joins a leaf's parent and its own name
	ParentSeparator = " > "
)
