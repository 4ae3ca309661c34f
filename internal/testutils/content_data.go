package testutils

// FirstNames are the given names drawn for generated sellers.
var FirstNames = []string{
	"Alexey", "Ekaterina", "Dmitry", "Anna", "Sergey", "Olga",
	"Ivan", "Maria", "Nikolai", "Elena", "Pavel", "Tatiana",
}

// LastNames are the family names drawn for generated sellers.
var LastNames = []string{
	"Petrov", "Smirnova", "Ivanov", "Kuznetsova", "Volkov", "Morozova",
	"Sokolov", "Popova", "Lebedev", "Novikova", "Kozlov", "Orlova",
}

// Positions are the job titles drawn for generated sellers.
var Positions = []string{"Junior Seller", "Senior Seller", "Lead Seller", "Store Manager"}

// Categories group generated products.
var Categories = []string{"Dairy", "Bakery", "Produce", "Beverages", "Household", "Snacks"}

// ProductNames are the catalog names drawn for generated products.
var ProductNames = []string{
	"Milk 1L", "Rye Bread", "Apples 1kg", "Green Tea", "Dish Soap", "Potato Chips",
	"Butter 200g", "Croissant", "Bananas 1kg", "Sparkling Water", "Paper Towels", "Salted Nuts",
	"Yogurt", "Baguette", "Tomatoes 1kg", "Orange Juice", "Laundry Powder", "Dark Chocolate",
}
