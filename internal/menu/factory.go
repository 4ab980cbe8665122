package menu

import (
	"math/rand"
	"sort"

	"github.com/jaswdr/faker"

	"franchise-ops/internal/models"
)

// DefaultSessions are the dining sessions a new location starts with.
func DefaultSessions() []models.DiningSession {
	return []models.DiningSession{
		{ID: "breakfast", Name: "Breakfast", Days: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, StartTime: "07:00", EndTime: "11:00", Capacity: 40, DefaultMenu: "Morning"},
		{ID: "lunch", Name: "Lunch", Days: []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, StartTime: "12:00", EndTime: "15:00", Capacity: 60, DefaultMenu: "Midday"},
		{ID: "dinner", Name: "Sunset Dinner", Days: []string{"Thu", "Fri", "Sat", "Sun"}, StartTime: "18:00", EndTime: "22:00", Capacity: 80, DefaultMenu: "Evening"},
	}
}

var (
	dishesByCategory = map[string][]string{
		"Starters": {"Hummus Plate", "Miso Soup", "Bruschetta", "Spring Rolls", "Garlic Bread"},
		"Mains":    {"Shakshuka", "Pad Thai", "Chicken Tikka Masala", "Mushroom Risotto", "Grilled Salmon", "Beef Bourguignon"},
		"Salads":   {"Greek Salad", "Caesar Salad", "Quinoa Salad", "Tabbouleh"},
		"Desserts": {"Tiramisu", "Mango Sticky Rice", "Baklava", "Crème Brûlée"},
		"Drinks":   {"Fresh Lemonade", "Iced Matcha", "Chocolate Shake", "Mint Tea"},
	}
	allergenPool = []string{"gluten", "dairy", "eggs", "nuts", "soy", "shellfish", "sesame"}
)

// SeedItem is a generated menu item plus the sessions it should be saved with.
type SeedItem struct {
	Item       models.MenuItem
	SessionIDs []string
}

// ItemFactory generates demo menu items. The same seed yields the same items.
type ItemFactory struct {
	fake faker.Faker
}

func NewItemFactory(seed int64) *ItemFactory {
	return &ItemFactory{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

// Generate builds n items, each assigned to at least one of sessions. Items
// carry no id so the service assigns one on save.
func (f *ItemFactory) Generate(n int, sessions []models.DiningSession) []SeedItem {
	categories := make([]string, 0, len(dishesByCategory))
	for c := range dishesByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	out := make([]SeedItem, 0, n)
	for i := 0; i < n; i++ {
		category := f.fake.RandomStringElement(categories)
		item := models.MenuItem{
			Name:        f.fake.RandomStringElement(dishesByCategory[category]),
			Category:    category,
			Price:       f.fake.Float64(2, 3, 40),
			Description: f.fake.Lorem().Sentence(8),
			Vegetarian:  f.fake.Bool(),
			GlutenFree:  f.fake.Bool(),
			DairyFree:   f.fake.Bool(),
			Popular:     f.fake.IntBetween(0, 9) < 3,
			Allergens:   f.allergens(),
		}
		out = append(out, SeedItem{Item: item, SessionIDs: f.sessionIDs(sessions)})
	}
	return out
}

func (f *ItemFactory) allergens() []string {
	picked := []string{}
	for _, a := range allergenPool {
		if f.fake.IntBetween(0, 9) < 2 {
			picked = append(picked, a)
		}
	}
	return picked
}

// sessionIDs picks a non-empty subset of sessions in session order.
func (f *ItemFactory) sessionIDs(sessions []models.DiningSession) []string {
	if len(sessions) == 0 {
		return []string{}
	}
	ids := []string{}
	for _, s := range sessions {
		if f.fake.Bool() {
			ids = append(ids, s.ID)
		}
	}
	if len(ids) == 0 {
		ids = append(ids, sessions[f.fake.IntBetween(0, len(sessions)-1)].ID)
	}
	return ids
}
