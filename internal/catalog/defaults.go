package catalog

// Built-in catalogs used when no external tables are supplied. The dollar
// amounts are tuned for a starting balance of 2000 and a monthly income
// of 3000 in the budget simulation, and daily allowances in the
// earn-and-save simulation.

// DefaultEvents returns the built-in life-event catalog for the budget
// simulation.
func DefaultEvents() []EventEntry {
	return []EventEntry{
		{
			ID:    "bike-repair",
			Title: "Your bike broke on the way to school!",
			Cost:  120,
			Choices: []Choice{
				{ChoiceID: "pay-cash", Label: "Pay the repair shop", Delta: Delta{Balance: -120}},
				{ChoiceID: "use-savings", Label: "Dip into savings", Delta: Delta{Savings: -120}},
				{ChoiceID: "walk", Label: "Walk for a while", Delta: Delta{Gauges: map[string]int{"energy": -15}}},
			},
		},
		{
			ID:    "dentist",
			Title: "Surprise dentist appointment.",
			Cost:  200,
			Choices: []Choice{
				{ChoiceID: "pay-cash", Label: "Pay the bill now", Delta: Delta{Balance: -200}},
				{ChoiceID: "borrow", Label: "Put it on credit", Delta: Delta{Debt: 200, Gauges: map[string]int{"mood": -5}}},
			},
		},
		{
			ID:    "birthday-gift",
			Title: "Your best friend's birthday is this week.",
			Cost:  50,
			Choices: []Choice{
				{ChoiceID: "buy-gift", Label: "Buy a nice gift", Delta: Delta{Balance: -50, Gauges: map[string]int{"mood": 10}}},
				{ChoiceID: "make-gift", Label: "Make something yourself", Delta: Delta{Gauges: map[string]int{"mood": 5, "energy": -10}}},
			},
		},
		{
			ID:    "phone-screen",
			Title: "You cracked your phone screen.",
			Cost:  150,
			Choices: []Choice{
				{ChoiceID: "repair", Label: "Repair it", Delta: Delta{Balance: -150}},
				{ChoiceID: "live-with-it", Label: "Live with the crack", Delta: Delta{Gauges: map[string]int{"mood": -10}}},
			},
		},
		{
			ID:         "found-cash",
			Title:      "You found a paid gig helping a neighbor move.",
			Cost:       0,
			Repeatable: true,
			Choices: []Choice{
				{ChoiceID: "take-it", Label: "Take the gig", Delta: Delta{Balance: 80, Gauges: map[string]int{"energy": -10}}},
				{ChoiceID: "rest", Label: "Keep your weekend", Delta: Delta{Gauges: map[string]int{"energy": 5}}},
			},
		},
		{
			ID:    "school-trip",
			Title: "A school trip needs a deposit.",
			Cost:  90,
			Choices: []Choice{
				{ChoiceID: "pay", Label: "Pay the deposit", Delta: Delta{Balance: -90, Gauges: map[string]int{"mood": 10}}},
				{ChoiceID: "skip", Label: "Skip the trip", Delta: Delta{Gauges: map[string]int{"mood": -15}}},
			},
		},
	}
}

// DefaultTasks returns the built-in chore catalog for the earn-and-save
// simulation.
func DefaultTasks() []TaskEntry {
	return []TaskEntry{
		{ID: "dishes", Title: "Wash the dishes", Reward: 5, Category: "home"},
		{ID: "lawn", Title: "Mow the lawn", Reward: 15, Category: "home"},
		{ID: "dog-walk", Title: "Walk the neighbor's dog", Reward: 10, Category: "neighborhood"},
		{ID: "car-wash", Title: "Wash the family car", Reward: 12, Category: "home"},
		{ID: "recycling", Title: "Sort and return the recycling", Reward: 8, Category: "neighborhood"},
		{ID: "tutoring", Title: "Help a classmate with homework", Reward: 10, Category: "school"},
		{ID: "bake-sale", Title: "Run a bake-sale stand", Reward: 20, Category: "neighborhood"},
		{ID: "garage", Title: "Clean the garage", Reward: 18, Category: "home"},
	}
}

// DefaultExpenses returns the built-in monthly expense options for the
// budget simulation.
func DefaultExpenses() []ExpenseEntry {
	return []ExpenseEntry{
		{ID: "rent", Title: "Rent", Amount: 1200, Required: true},
		{ID: "groceries", Title: "Groceries", Amount: 450, Required: true},
		{ID: "transit", Title: "Transit pass", Amount: 90, Required: true},
		{ID: "phone", Title: "Phone plan", Amount: 60},
		{ID: "streaming", Title: "Streaming bundle", Amount: 35},
		{ID: "eating-out", Title: "Eating out", Amount: 180},
		{ID: "new-clothes", Title: "New clothes", Amount: 120},
		{ID: "games", Title: "Video games", Amount: 70},
		{ID: "gym", Title: "Climbing gym", Amount: 55},
	}
}
