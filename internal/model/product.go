package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalog. An ID of zero means the
// product is transient and has not been persisted yet.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	Category    Category
}

// productJSON is the wire representation of a Product. Price travels as
// a string to keep exact precision and category as its symbolic name.
type productJSON struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
	Category    string `json:"category"`
}

// MarshalJSON serialises the product into its wire representation.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Available:   p.Available,
		Category:    p.Category.String(),
	})
}

// UnmarshalJSON deserialises a product from client input, validating
// every field. All failures are reported as *ValidationError. An "id"
// key in the payload is ignored; ids come from the path or the store.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return NewValidationErrorf("expected a JSON object, got %s", typeErr.Value)
		}
		return NewValidationError("bad or no data")
	}

	name, ok := raw["name"]
	if !ok || isNull(name) {
		return NewValidationError("missing name")
	}
	if err := json.Unmarshal(name, &p.Name); err != nil {
		return NewValidationErrorf("invalid name: expected a string, got %s", jsonType(name))
	}
	if p.Name == "" {
		return NewValidationError("missing name")
	}

	if desc, ok := raw["description"]; ok && !isNull(desc) {
		if err := json.Unmarshal(desc, &p.Description); err != nil {
			return NewValidationErrorf("invalid description: expected a string, got %s", jsonType(desc))
		}
	}

	price, ok := raw["price"]
	if !ok || isNull(price) {
		return NewValidationError("missing price")
	}
	if err := json.Unmarshal(price, &p.Price); err != nil {
		return NewValidationErrorf("invalid price: %s", trimmed(price))
	}

	available, ok := raw["available"]
	if !ok || isNull(available) {
		return NewValidationError("missing available")
	}
	if err := json.Unmarshal(available, &p.Available); err != nil {
		return NewValidationErrorf("invalid available: expected a boolean, got %s", jsonType(available))
	}

	p.Category = CategoryUnknown
	if category, ok := raw["category"]; ok && !isNull(category) {
		var name string
		if err := json.Unmarshal(category, &name); err != nil {
			return NewValidationErrorf("invalid category: expected a string, got %s", jsonType(category))
		}
		c, err := ParseCategory(name)
		if err != nil {
			return err
		}
		p.Category = c
	}

	return nil
}

// Persisted reports whether the product has been assigned a store id.
func (p *Product) Persisted() bool {
	return p.ID > 0
}

func (p *Product) String() string {
	return fmt.Sprintf("<Product %s id=[%d]>", p.Name, p.ID)
}

// isNull reports whether a raw message is the JSON null literal.
func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// jsonType names the JSON type of a raw message for error messages.
func jsonType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "empty value"
	}
	switch raw[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// trimmed bounds a raw value for inclusion in an error message.
func trimmed(raw json.RawMessage) string {
	const max = 32
	s := string(raw)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
