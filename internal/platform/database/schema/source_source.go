package schema

// SourceSourceTable represents the 'source.source' table.
//
// The pair (externalserviceid, externalmetadata) is unique; external_metadata
// is stored as jsonb since its shape depends on the owning service's kind.
type SourceSourceTable struct {
	Table             string
	ID                string
	ExternalServiceID string
	ExternalMetadata  string
	CreatedAt         string
	UpdatedAt         string
}

// SourceSource is the schema definition for source.source
var SourceSource = SourceSourceTable{
	Table:             "source.source",
	ID:                "id",
	ExternalServiceID: "externalserviceid",
	ExternalMetadata:  "externalmetadata",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

func (t SourceSourceTable) Columns() []string {
	return []string{t.ID, t.ExternalServiceID, t.ExternalMetadata, t.CreatedAt, t.UpdatedAt}
}
