package schema

// MediumMediumTable represents the 'medium.medium' table.
type MediumMediumTable struct {
	Table     string
	ID        string
	CreatedAt string
	UpdatedAt string
}

// MediumMedium is the schema definition for medium.medium
var MediumMedium = MediumMediumTable{
	Table:     "medium.medium",
	ID:        "id",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t MediumMediumTable) Columns() []string { return []string{t.ID, t.CreatedAt, t.UpdatedAt} }

// MediumMediumTagTable represents the 'medium.medium_tag' junction table, one
// row per (medium, tag, tag_type) association. Insertion order is preserved
// via sortorder so that Medium.tags materializes in the order tags were
// attached under a given type.
type MediumMediumTagTable struct {
	Table     string
	MediumID  string
	TagID     string
	TagTypeID string
	SortOrder string
}

var MediumMediumTag = MediumMediumTagTable{
	Table:     "medium.medium_tag",
	MediumID:  "mediumid",
	TagID:     "tagid",
	TagTypeID: "tagtypeid",
	SortOrder: "sortorder",
}

func (t MediumMediumTagTable) Columns() []string {
	return []string{t.MediumID, t.TagID, t.TagTypeID, t.SortOrder}
}

// MediumMediumSourceTable represents the 'medium.medium_source' junction
// table, one row per (medium, source) association, insertion-ordered.
type MediumMediumSourceTable struct {
	Table     string
	MediumID  string
	SourceID  string
	SortOrder string
}

var MediumMediumSource = MediumMediumSourceTable{
	Table:     "medium.medium_source",
	MediumID:  "mediumid",
	SourceID:  "sourceid",
	SortOrder: "sortorder",
}

func (t MediumMediumSourceTable) Columns() []string {
	return []string{t.MediumID, t.SourceID, t.SortOrder}
}
