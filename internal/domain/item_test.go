package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeKey_KnownCategories(t *testing.T) {
	cases := map[string]string{
		CategoryVinyls:    "age",
		CategoryFurniture: "material",
		CategoryWatches:   "batteryLife",
		CategoryShoes:     "size",
		CategoryBooks:     "author",
	}

	for category, want := range cases {
		key, ok := AttributeKey(category)
		assert.True(t, ok, category)
		assert.Equal(t, want, key, category)
	}
}

func TestAttributeKey_CategoryWithoutAttribute(t *testing.T) {
	_, ok := AttributeKey(CategoryOther)
	assert.False(t, ok)

	_, ok = AttributeKey("groceries")
	assert.False(t, ok)
}

func TestNewAttribute(t *testing.T) {
	attr := NewAttribute(CategoryBooks, "Ursula K. Le Guin")
	require.NotNil(t, attr)
	assert.Equal(t, "author", attr.Key)
	assert.Equal(t, "Ursula K. Le Guin", attr.Value)

	// Omitted value stays nil but the key is still fixed by the category.
	attr = NewAttribute(CategoryShoes, nil)
	require.NotNil(t, attr)
	assert.Equal(t, "size", attr.Key)
	assert.Nil(t, attr.Value)

	assert.Nil(t, NewAttribute(CategoryOther, "ignored"))
	assert.Nil(t, NewAttribute("groceries", "ignored"))
}

func TestItemMarshalJSON_FlattensAttribute(t *testing.T) {
	item := Item{
		ID:          "item-1",
		Name:        "Kind of Blue",
		Category:    CategoryVinyls,
		Description: "1959 pressing",
		Price:       120,
		Seller:      "alice",
		Image:       "https://example.com/kob.jpg",
		Rating:      7.5,
		Reviews: []Review{
			{UserID: "u1", Rating: 7, Review: "great", Date: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
		Attribute: NewAttribute(CategoryVinyls, 67),
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, "item-1", m["id"])
	assert.Equal(t, "vinyls", m["category"])
	assert.EqualValues(t, 67, m["age"])
	assert.NotContains(t, m, "attribute")
	assert.NotContains(t, m, "material")

	reviews, ok := m["reviews"].([]any)
	require.True(t, ok)
	assert.Len(t, reviews, 1)
}

func TestItemMarshalJSON_NoAttribute(t *testing.T) {
	item := Item{
		ID:       "item-2",
		Name:     "Mystery Box",
		Category: CategoryOther,
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	for _, key := range []string{"age", "material", "batteryLife", "size", "author"} {
		assert.NotContains(t, m, key)
	}
}

func TestItemMarshalJSON_NilReviewsEncodeAsEmptyArray(t *testing.T) {
	item := Item{ID: "item-3", Name: "Chair", Category: CategoryFurniture}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	reviews, ok := m["reviews"].([]any)
	require.True(t, ok, "reviews must be an array, not null")
	assert.Empty(t, reviews)
}
