package schema

// SourceExternalServiceTable represents the 'source.external_service' table.
type SourceExternalServiceTable struct {
	Table      string
	ID         string
	Slug       string
	Kind       string
	Name       string
	BaseURL    string
	URLPattern string
	CreatedAt  string
	UpdatedAt  string
}

// SourceExternalService is the schema definition for source.external_service
var SourceExternalService = SourceExternalServiceTable{
	Table:      "source.external_service",
	ID:         "id",
	Slug:       "slug",
	Kind:       "kind",
	Name:       "name",
	BaseURL:    "baseurl",
	URLPattern: "urlpattern",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t SourceExternalServiceTable) Columns() []string {
	return []string{t.ID, t.Slug, t.Kind, t.Name, t.BaseURL, t.URLPattern, t.CreatedAt, t.UpdatedAt}
}
