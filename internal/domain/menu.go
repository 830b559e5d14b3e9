package domain

import (
	"strings"
	"time"
)

// TagVegetarian dietary tag used by the public "vegetarian only" filter
const TagVegetarian = "vegetarian"

// Category groups menu items (starters, mains, desserts...)
type Category struct {
	ID       int64
	Name     string
	Slug     string
	Position int
}

// MenuItem represents a dish of the menu
type MenuItem struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	Allergens   *string
	DietaryTags []string // e.g. vegan, vegetarian, gluten-free
	IsAvailable bool
	IsSpecial   bool
	Position    int
	CreatedAt   time.Time
}

// HasTag returns true if the item carries the dietary tag (case-insensitive)
func (m *MenuItem) HasTag(tag string) bool {
	for _, t := range m.DietaryTags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// JoinTags serializes dietary tags into the comma-separated storage form
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitTags parses the comma-separated storage form
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// MenuFilter filter for menu item listings
type MenuFilter struct {
	CategorySlug  *string // nil - all categories
	Search        *string // case-insensitive match on item name
	Vegetarian    bool
	OnlyAvailable bool
}
