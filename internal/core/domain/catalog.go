package domain

import "errors"

// ErrInvalidCategory is returned when a ticket carries a category outside the
// known set.
var ErrInvalidCategory = errors.New("invalid ticket category")

// ErrCategoryNotConfigured is returned when a category present in the data has
// no catalog entry. This is a configuration problem, not a store failure.
var ErrCategoryNotConfigured = errors.New("category has no catalog entry")

// TicketCategory classifies what a ticket is about.
type TicketCategory string

const (
	CategoryHardware TicketCategory = "HARDWARE"
	CategorySoftware TicketCategory = "SOFTWARE"
	CategoryNetwork  TicketCategory = "NETWORK"
	CategoryAccess   TicketCategory = "ACCESS"
	CategoryOther    TicketCategory = "OTHER"
)

func (c TicketCategory) String() string { return string(c) }

// IsValid reports whether the category belongs to the known set.
func (c TicketCategory) IsValid() bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryNetwork, CategoryAccess, CategoryOther:
		return true
	}
	return false
}

// CategoryMeta holds the display attributes for a ticket category.
type CategoryMeta struct {
	Label string
	Color string
	Icon  string
}

// CategoryCatalog maps ticket categories to their display attributes. It is
// built once at startup and never mutated afterwards.
type CategoryCatalog struct {
	entries map[TicketCategory]CategoryMeta
}

// NewCategoryCatalog builds a catalog from the given entries.
func NewCategoryCatalog(entries map[TicketCategory]CategoryMeta) *CategoryCatalog {
	copied := make(map[TicketCategory]CategoryMeta, len(entries))
	for category, meta := range entries {
		copied[category] = meta
	}
	return &CategoryCatalog{entries: copied}
}

// DefaultCategoryCatalog returns the catalog shipped with the application.
func DefaultCategoryCatalog() *CategoryCatalog {
	return NewCategoryCatalog(map[TicketCategory]CategoryMeta{
		CategoryHardware: {Label: "Hardware", Color: "#f97316", Icon: "cpu"},
		CategorySoftware: {Label: "Software", Color: "#3b82f6", Icon: "app-window"},
		CategoryNetwork:  {Label: "Red", Color: "#22c55e", Icon: "network"},
		CategoryAccess:   {Label: "Accesos", Color: "#a855f7", Icon: "key-round"},
		CategoryOther:    {Label: "Otros", Color: "#64748b", Icon: "circle-help"},
	})
}

// Lookup resolves the display attributes for a category.
func (c *CategoryCatalog) Lookup(category TicketCategory) (CategoryMeta, error) {
	meta, ok := c.entries[category]
	if !ok {
		return CategoryMeta{}, ErrCategoryNotConfigured
	}
	return meta, nil
}
