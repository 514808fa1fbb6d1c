package schema

// TagTypeTagTypeTable represents the 'tagtype.tag_type' table.
type TagTypeTagTypeTable struct {
	Table string
	ID    string
	Slug  string
	Name  string
	Kana  string
}

// TagTypeTagType is the schema definition for tagtype.tag_type
var TagTypeTagType = TagTypeTagTypeTable{
	Table: "tagtype.tag_type",
	ID:    "id",
	Slug:  "slug",
	Name:  "name",
	Kana:  "kana",
}

func (t TagTypeTagTypeTable) Columns() []string { return []string{t.ID, t.Slug, t.Name, t.Kana} }
