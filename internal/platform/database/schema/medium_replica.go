package schema

// MediumReplicaTable represents the 'medium.replica' table.
//
// mimetype, width/height, and thumbnailid are null iff status != 'ready';
// displayorder is dense and unique within mediumid starting at 1.
type MediumReplicaTable struct {
	Table        string
	ID           string
	MediumID     string
	DisplayOrder string
	OriginalURL  string
	MimeType     string
	Width        string
	Height       string
	ThumbnailID  string
	Status       string
	CreatedAt    string
	UpdatedAt    string
}

// MediumReplica is the schema definition for medium.replica
var MediumReplica = MediumReplicaTable{
	Table:        "medium.replica",
	ID:           "id",
	MediumID:     "mediumid",
	DisplayOrder: "displayorder",
	OriginalURL:  "originalurl",
	MimeType:     "mimetype",
	Width:        "width",
	Height:       "height",
	ThumbnailID:  "thumbnailid",
	Status:       "status",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t MediumReplicaTable) Columns() []string {
	return []string{
		t.ID, t.MediumID, t.DisplayOrder, t.OriginalURL, t.MimeType,
		t.Width, t.Height, t.ThumbnailID, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
