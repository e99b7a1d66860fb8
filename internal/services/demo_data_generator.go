package services

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

type demoDataGenerator struct {
	faker  *gofakeit.Faker
	nextID int64
}

type expensePreset struct {
	name         string
	expenseType  string
	minAmount    float64
	maxAmount    float64
	categoryHint string
}

// NewDemoDataGenerator creates a generator seeded for reproducible output.
// Pass zero for a random seed.
func NewDemoDataGenerator(seed uint64) DemoDataGeneratorInterface {
	return &demoDataGenerator{
		faker:  gofakeit.New(seed),
		nextID: 1,
	}
}

func expensePresets() []expensePreset {
	return []expensePreset{
		{"Rent", models.ExpenseTypeFixed, 600, 1800, "Housing"},
		{"Electricity", models.ExpenseTypeFixed, 40, 160, "Utilities"},
		{"Internet", models.ExpenseTypeFixed, 25, 60, "Utilities"},
		{"Phone Plan", models.ExpenseTypeFixed, 10, 50, "Utilities"},
		{"Home Insurance", models.ExpenseTypeFixed, 15, 45, "Insurance"},
		{"Car Insurance", models.ExpenseTypeFixed, 40, 120, "Insurance"},
		{"Gym Membership", models.ExpenseTypeFixed, 20, 70, "Health"},
		{"Streaming Services", models.ExpenseTypeFixed, 10, 45, "Entertainment"},
		{"Groceries", models.ExpenseTypeVariable, 150, 500, "Food"},
		{"Restaurants", models.ExpenseTypeVariable, 40, 250, "Food"},
		{"Fuel", models.ExpenseTypeVariable, 50, 200, "Transport"},
		{"Public Transport", models.ExpenseTypeVariable, 20, 90, "Transport"},
		{"Clothing", models.ExpenseTypeVariable, 20, 180, "Shopping"},
		{"Leisure", models.ExpenseTypeVariable, 30, 150, "Entertainment"},
		{"Pharmacy", models.ExpenseTypeVariable, 10, 80, "Health"},
	}
}

func categoryPresets() []models.Category {
	budget := func(v float64) *float64 { return &v }
	return []models.Category{
		{Name: "Housing", Type: models.CategoryTypeExpense, MonthlyBudget: budget(1500), Color: "#4C6EF5", Icon: "home"},
		{Name: "Utilities", Type: models.CategoryTypeExpense, MonthlyBudget: budget(250), Color: "#15AABF", Icon: "bolt"},
		{Name: "Food", Type: models.CategoryTypeExpense, MonthlyBudget: budget(600), Color: "#FA5252", Icon: "utensils"},
		{Name: "Transport", Type: models.CategoryTypeExpense, MonthlyBudget: budget(300), Color: "#FD7E14", Icon: "car"},
		{Name: "Entertainment", Type: models.CategoryTypeExpense, MonthlyBudget: budget(200), Color: "#BE4BDB", Icon: "film"},
		{Name: "Health", Type: models.CategoryTypeExpense, MonthlyBudget: budget(150), Color: "#40C057", Icon: "heart"},
		{Name: "Insurance", Type: models.CategoryTypeExpense, Color: "#868E96", Icon: "shield"},
		{Name: "Shopping", Type: models.CategoryTypeExpense, Color: "#F783AC", Icon: "bag"},
	}
}

func (g *demoDataGenerator) id() int64 {
	id := g.nextID
	g.nextID++
	return id
}

func (g *demoDataGenerator) amount(min, max float64) float64 {
	return numeric.Round2(g.faker.Float64Range(min, max))
}

// GenerateUser produces a profile that has not finished onboarding yet.
func (g *demoDataGenerator) GenerateUser() models.User {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	return models.User{
		ID:            g.id(),
		Username:      g.faker.Username(),
		Email:         g.faker.Email(),
		FirstName:     first,
		LastName:      last,
		MonthlyIncome: g.amount(1800, 6500),
		Currency:      "EUR",
	}
}

func (g *demoDataGenerator) GenerateIncomes(count int) []models.Income {
	types := []string{
		models.IncomeTypeSalary,
		models.IncomeTypeFreelance,
		models.IncomeTypeInvestment,
		models.IncomeTypeRental,
		models.IncomeTypeOther,
	}

	incomes := make([]models.Income, 0, count)
	for i := 0; i < count; i++ {
		income := models.Income{
			ID:        g.id(),
			Name:      g.faker.Company(),
			Amount:    g.amount(200, 4500),
			Type:      types[g.faker.IntRange(0, len(types)-1)],
			Frequency: models.FrequencyMonthly,
		}
		if i == 0 {
			income.Name = "Salary"
			income.Type = models.IncomeTypeSalary
			income.IsPrimary = true
		}
		incomes = append(incomes, income)
	}
	return incomes
}

func (g *demoDataGenerator) GenerateCategories(count int) []models.Category {
	presets := categoryPresets()
	if count > len(presets) {
		count = len(presets)
	}
	categories := make([]models.Category, 0, count)
	for i := 0; i < count; i++ {
		c := presets[i]
		c.ID = g.id()
		categories = append(categories, c)
	}
	return categories
}

func (g *demoDataGenerator) GenerateExpenses(count int, categories []models.Category) []models.Expense {
	byName := make(map[string]*models.Category, len(categories))
	for i := range categories {
		byName[categories[i].Name] = &categories[i]
	}

	presets := expensePresets()
	expenses := make([]models.Expense, 0, count)
	for i := 0; i < count; i++ {
		preset := presets[i%len(presets)]
		expense := models.Expense{
			ID:        g.id(),
			Name:      preset.name,
			Amount:    g.amount(preset.minAmount, preset.maxAmount),
			Type:      preset.expenseType,
			Frequency: models.FrequencyMonthly,
		}
		if c, ok := byName[preset.categoryHint]; ok {
			id := c.ID
			expense.CategoryID = &id
			expense.CategoryName = c.Name
		}
		expenses = append(expenses, expense)
	}
	return expenses
}

func (g *demoDataGenerator) GenerateSavingsGoals(count int) []models.SavingsGoal {
	names := []string{"Emergency Fund", "Summer Vacation", "New Car", "Home Deposit", "Investment Portfolio"}
	types := []string{
		models.GoalTypeEmergency,
		models.GoalTypeVacation,
		models.GoalTypePurchase,
		models.GoalTypePurchase,
		models.GoalTypeInvestment,
	}
	priorities := []string{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

	goals := make([]models.SavingsGoal, 0, count)
	for i := 0; i < count; i++ {
		target := g.amount(1000, 20000)
		current := numeric.Round2(target * g.faker.Float64Range(0, 0.9))
		date := time.Now().AddDate(0, g.faker.IntRange(3, 36), 0)
		goals = append(goals, models.SavingsGoal{
			ID:            g.id(),
			Name:          names[i%len(names)],
			TargetAmount:  target,
			CurrentAmount: current,
			TargetDate:    &date,
			Type:          types[i%len(types)],
			Priority:      priorities[g.faker.IntRange(0, len(priorities)-1)],
		})
	}
	return goals
}

// GenerateLedger produces signed ad-hoc entries inside the date range,
// roughly three expenses to every income.
func (g *demoDataGenerator) GenerateLedger(count int, start, end time.Time) []models.Transaction {
	methods := []string{
		models.PaymentMethodCard,
		models.PaymentMethodCash,
		models.PaymentMethodTransfer,
	}
	categories := categoryPresets()

	ledger := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		entry := models.Transaction{
			ID:            g.id(),
			Date:          g.faker.DateRange(start, end),
			PaymentMethod: methods[g.faker.IntRange(0, len(methods)-1)],
			Frequency:     models.TransactionFrequencyOnce,
		}
		if g.faker.IntRange(1, 4) == 1 {
			entry.Name = g.faker.Company()
			entry.Type = models.TransactionTypeIncome
			entry.Amount = g.amount(50, 1200)
		} else {
			c := categories[g.faker.IntRange(0, len(categories)-1)]
			entry.Name = g.faker.ProductName()
			entry.Type = models.TransactionTypeExpense
			entry.Category = c.Name
			entry.Amount = -g.amount(5, 300)
		}
		ledger = append(ledger, entry)
	}
	return ledger
}

// GenerateFinancialData assembles a complete dashboard payload, the shape
// the backend returns after onboarding.
func (g *demoDataGenerator) GenerateFinancialData() *dto.FinancialDataResponse {
	categories := g.GenerateCategories(6)
	incomes := g.GenerateIncomes(2)
	expenses := g.GenerateExpenses(10, categories)
	goals := g.GenerateSavingsGoals(3)

	data := &dto.FinancialDataResponse{
		MonthlyIncome: numeric.Amount(incomes[0].Amount),
	}
	for i := range incomes {
		data.Incomes = append(data.Incomes, dto.IncomeResponse{
			ID:        incomes[i].ID,
			Name:      incomes[i].Name,
			Amount:    numeric.Amount(incomes[i].Amount),
			Type:      incomes[i].Type,
			IsPrimary: incomes[i].IsPrimary,
			Frequency: incomes[i].Frequency,
		})
	}
	for i := range expenses {
		resp := dto.ExpenseResponse{
			ID:           expenses[i].ID,
			Name:         expenses[i].Name,
			Amount:       numeric.Amount(expenses[i].Amount),
			Type:         expenses[i].Type,
			Category:     expenses[i].CategoryID,
			CategoryName: expenses[i].CategoryName,
			Frequency:    expenses[i].Frequency,
		}
		if expenses[i].Type == models.ExpenseTypeFixed {
			data.FixedExpenses = append(data.FixedExpenses, resp)
		} else {
			data.VariableExpenses = append(data.VariableExpenses, resp)
		}
	}
	for i := range goals {
		resp := dto.SavingsGoalResponse{
			ID:            goals[i].ID,
			Name:          goals[i].Name,
			TargetAmount:  numeric.Amount(goals[i].TargetAmount),
			CurrentAmount: numeric.Amount(goals[i].CurrentAmount),
			Type:          goals[i].Type,
			Priority:      goals[i].Priority,
		}
		if goals[i].TargetDate != nil {
			resp.TargetDate = goals[i].TargetDate.Format("2006-01-02")
		}
		data.SavingsGoals = append(data.SavingsGoals, resp)
	}
	return data
}
