package domain

// CatalogItem is one row of a fixed lookup table (roles, case file
// statuses, evidence types). Catalogs are seeded by migrations and read
// only.
type CatalogItem struct {
	ID          int
	Name        string
	Description *string
}
