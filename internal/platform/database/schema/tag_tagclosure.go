package schema

// TagTagClosureTable represents the 'tag.tag_closure' table: one row per
// ordered (ancestor, descendant) pair, including self-rows at distance 0.
type TagTagClosureTable struct {
	Table        string
	AncestorID   string
	DescendantID string
	Distance     string
}

// TagTagClosure is the schema definition for tag.tag_closure
var TagTagClosure = TagTagClosureTable{
	Table:        "tag.tag_closure",
	AncestorID:   "ancestorid",
	DescendantID: "descendantid",
	Distance:     "distance",
}

func (t TagTagClosureTable) Columns() []string {
	return []string{t.AncestorID, t.DescendantID, t.Distance}
}
