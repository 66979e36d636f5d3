package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Category classifies a product. The zero value is CategoryUnknown.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

var categoryNames = [...]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryCloths:     "CLOTHS",
	CategoryFood:       "FOOD",
	CategoryHousewares: "HOUSEWARES",
	CategoryAutomotive: "AUTOMOTIVE",
	CategoryTools:      "TOOLS",
}

// String returns the symbolic name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "UNKNOWN"
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c >= CategoryUnknown && int(c) < len(categoryNames)
}

// ParseCategory resolves an exact symbolic name as used in JSON bodies
// and in the database column.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryUnknown, NewValidationError(fmt.Sprintf("invalid category %q", name))
}

// ParseCategoryToken resolves a query-string token. Both the integer
// ordinal and the case-insensitive symbolic name are accepted.
func ParseCategoryToken(token string) (Category, error) {
	if ordinal, err := strconv.Atoi(token); err == nil {
		c := Category(ordinal)
		if !c.Valid() {
			return CategoryUnknown, NewValidationError(fmt.Sprintf("invalid category ordinal %d", ordinal))
		}
		return c, nil
	}
	return ParseCategory(strings.ToUpper(token))
}
