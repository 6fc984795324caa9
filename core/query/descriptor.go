package query

// Join declares a one-level lookup join: the projection may pull selected
// columns of a directly referenced entity, never deeper.
type Join struct {
	Table string
	On    string
}

// Descriptor pairs a declarative storage projection with a pure transform
// from the fetched row shape R to the public DTO shape D. Descriptors are
// stateless and shared by reference; the transform must be total over any
// row the projection yields.
type Descriptor[R any, D any] struct {
	// Table is the FROM clause target, optionally aliased ("placemark pm").
	Table string
	// Columns are the selected columns, including joined lookup columns.
	Columns []string
	// Joins are the one-level lookup joins the projection needs.
	Joins []Join
	// OrderBy is the fixed stable sort for listings. The id column is
	// appended as a tiebreak so pages stay deterministic.
	OrderBy []string
	// IDColumn is the qualified primary key column ("pm.id").
	IDColumn string
	// Transform maps one fetched row to its DTO.
	Transform func(R) D
}
