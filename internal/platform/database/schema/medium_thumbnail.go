package schema

// MediumThumbnailTable represents the 'medium.thumbnail' table. The binary
// itself lives out of band in the object repository; this row only tracks
// dimensions and is addressed by id through the injected URL factory.
type MediumThumbnailTable struct {
	Table     string
	ID        string
	Width     string
	Height    string
	CreatedAt string
	UpdatedAt string
}

// MediumThumbnail is the schema definition for medium.thumbnail
var MediumThumbnail = MediumThumbnailTable{
	Table:     "medium.thumbnail",
	ID:        "id",
	Width:     "width",
	Height:    "height",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t MediumThumbnailTable) Columns() []string {
	return []string{t.ID, t.Width, t.Height, t.CreatedAt, t.UpdatedAt}
}
