package model

// Category identifies a sport category. The set of categories is closed:
// events reference categories by numeric id (events.sport_category_id) and
// clients submit them by name. The forward mapping (id -> name) is total for
// display purposes, while the reverse mapping (name -> id) is validated and
// rejects unknown names at event creation time.
type Category uint8

const (
	CategoryFootball Category = iota + 1
	CategoryBasketball
	CategoryTennis
	CategoryRunning
	CategoryVolleyball
	CategoryCricket
)

var categoryNames = map[Category]string{
	CategoryFootball:   "Football",
	CategoryBasketball: "Basketball",
	CategoryTennis:     "Tennis",
	CategoryRunning:    "Running",
	CategoryVolleyball: "Volleyball",
	CategoryCricket:    "Cricket",
}

var categoryIDs = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for id, name := range categoryNames {
		m[name] = id
	}
	return m
}()

// Name returns the display name for the category. Unknown ids render as
// "Unknown" so that stale rows never break a listing.
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "Unknown"
}

// CategoryByName resolves a category name to its id. The boolean is false
// when the name is not part of the enumeration; callers must reject such
// input rather than defaulting.
func CategoryByName(name string) (Category, bool) {
	c, ok := categoryIDs[name]
	return c, ok
}
