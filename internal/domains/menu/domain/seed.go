package domain

import "github.com/shopspring/decimal"

// DefaultMenu returns the starter catalog loaded into an empty store.
func DefaultMenu() []*Item {
	type seed struct {
		name, description, price string
		category                 Category
		image                    string
	}
	seeds := []seed{
		{"Cheese Pizza", "Classic pizza with mozzarella cheese and tomato sauce", "12.99", CategoryMainCourse, "https://images.unsplash.com/photo-1513104890138-7c749659a591"},
		{"Burger", "Juicy beef burger with lettuce, tomato and cheese", "10.50", CategoryMainCourse, "https://images.unsplash.com/photo-1568901346375-23c9450c58cd"},
		{"Caesar Salad", "Fresh romaine lettuce with caesar dressing and croutons", "8.00", CategoryAppetizer, "https://images.unsplash.com/photo-1546793665-c74683f339c1"},
		{"Chocolate Cake", "Rich chocolate layer cake with ganache", "6.50", CategoryDessert, "https://images.unsplash.com/photo-1578985545062-69928b1d9587"},
		{"Coffee", "Freshly brewed house coffee", "3.00", CategoryBeverage, "https://images.unsplash.com/photo-1509042239860-f550ce710b93"},
		{"Ice Cream", "Vanilla ice cream with chocolate syrup", "4.50", CategoryDessert, "https://images.unsplash.com/photo-1497034825429-c343d7c6a68f"},
		{"French Fries", "Crispy golden fries with sea salt", "5.00", CategoryAppetizer, "https://images.unsplash.com/photo-1573080496219-bb080dd4f877"},
		{"Grilled Chicken", "Herb marinated grilled chicken breast with vegetables", "14.00", CategoryMainCourse, "https://images.unsplash.com/photo-1532550907401-a500c9a57435"},
		{"Lemonade", "Freshly squeezed lemonade with mint", "3.50", CategoryBeverage, "https://images.unsplash.com/photo-1621263764928-df1444c5e859"},
		{"Pasta Carbonara", "Spaghetti with creamy egg sauce, pancetta and parmesan", "13.00", CategoryMainCourse, "https://images.unsplash.com/photo-1612874742237-6526221588e3"},
		{"Garlic Bread", "Toasted bread with garlic butter and herbs", "4.00", CategoryAppetizer, "https://images.unsplash.com/photo-1573140401552-3fab0b24306f"},
		{"Mango Smoothie", "Blended mango with yogurt and honey", "5.00", CategoryBeverage, "https://images.unsplash.com/photo-1623065422902-30a2d299bbe4"},
	}
	items := make([]*Item, 0, len(seeds))
	for i, s := range seeds {
		items = append(items, &Item{
			ID:          int64(i + 1),
			Name:        s.name,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			Category:    s.category,
			Image:       s.image,
			Available:   true,
		})
	}
	return items
}
