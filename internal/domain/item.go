package domain

import (
	"encoding/json"
	"time"
)

// Item categories sold by the storefront.
const (
	CategoryVinyls    = "vinyls"
	CategoryFurniture = "furniture"
	CategoryWatches   = "watches"
	CategoryShoes     = "shoes"
	CategoryBooks     = "books"
	CategoryOther     = "other"
)

// attributeKeys maps each category to the single optional attribute it
// carries. Categories outside this set carry no attribute. Adding a category
// with an attribute means adding an entry here, nothing else.
var attributeKeys = map[string]string{
	CategoryVinyls:    "age",
	CategoryFurniture: "material",
	CategoryWatches:   "batteryLife",
	CategoryShoes:     "size",
	CategoryBooks:     "author",
}

// AttributeKey returns the attribute key for the given category and whether
// the category carries one.
func AttributeKey(category string) (string, bool) {
	key, ok := attributeKeys[category]
	return key, ok
}

// Attribute is the category-tagged optional attribute of an item. Key is
// fixed by the item's category at creation time; Value may be nil when the
// seller omitted it.
type Attribute struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// NewAttribute builds the attribute for the given category. It returns nil
// for categories that carry no attribute; the value is nil when omitted.
func NewAttribute(category string, value any) *Attribute {
	key, ok := AttributeKey(category)
	if !ok {
		return nil
	}
	return &Attribute{Key: key, Value: value}
}

// Item represents a catalog item. Rating is derived: the arithmetic mean of
// all review ratings, 0 when no reviews exist. Category is immutable after
// creation, and so is the attribute key tied to it.
type Item struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       float64
	Seller      string
	Image       string
	Rating      float64
	Reviews     []Review
	Attribute   *Attribute
	CreatedAt   time.Time
}

// MarshalJSON flattens the category-tagged attribute into the item object
// under its own key (e.g. "age" for vinyls), matching the storefront wire
// format. Reviews always encode as an array, never null.
func (i Item) MarshalJSON() ([]byte, error) {
	reviews := i.Reviews
	if reviews == nil {
		reviews = []Review{}
	}

	m := map[string]any{
		"id":          i.ID,
		"name":        i.Name,
		"category":    i.Category,
		"description": i.Description,
		"price":       i.Price,
		"seller":      i.Seller,
		"image":       i.Image,
		"rating":      i.Rating,
		"reviews":     reviews,
		"created_at":  i.CreatedAt,
	}

	if i.Attribute != nil {
		m[i.Attribute.Key] = i.Attribute.Value
	}

	return json.Marshal(m)
}
