package schema

// TagTagTable represents the 'tag.tag' table.
//
// Row id = all-zero UUID is the distinguished root sentinel, seeded by
// migration and never surfaced by internal/core/tag.
type TagTagTable struct {
	Table     string
	ID        string
	Name      string
	Kana      string
	Aliases   string
	CreatedAt string
	UpdatedAt string
}

// TagTag is the schema definition for tag.tag
var TagTag = TagTagTable{
	Table:     "tag.tag",
	ID:        "id",
	Name:      "name",
	Kana:      "kana",
	Aliases:   "aliases",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t TagTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Kana, t.Aliases, t.CreatedAt, t.UpdatedAt}
}
