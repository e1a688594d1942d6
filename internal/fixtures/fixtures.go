// Package fixtures holds the placeholder records used to populate a fresh
// dashboard database.
package fixtures

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/seeder/internal/models"
)

// Set is one batch of fixture records, grouped by table.
type Set struct {
	Users     []models.User
	Customers []models.Customer
	Invoices  []models.Invoice
	Revenue   []models.Revenue
}

// Counts returns the number of records per table, keyed by table name.
func (s Set) Counts() map[string]int {
	return map[string]int{
		"users":     len(s.Users),
		"customers": len(s.Customers),
		"invoices":  len(s.Invoices),
		"revenue":   len(s.Revenue),
	}
}

// Default returns the dashboard placeholder data. Each call returns fresh
// slices, so callers may modify the result.
func Default() Set {
	customers := defaultCustomers()
	return Set{
		Users:     defaultUsers(),
		Customers: customers,
		Invoices:  defaultInvoices(customers),
		Revenue:   defaultRevenue(),
	}
}

func defaultUsers() []models.User {
	return []models.User{
		{
			ID:       uuid.MustParse("410544b2-4001-4271-9855-fec4b6a6442a"),
			Name:     "User",
			Email:    "user@nextmail.com",
			Password: "123456",
		},
	}
}

func defaultCustomers() []models.Customer {
	return []models.Customer{
		{
			ID:       uuid.MustParse("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"),
			Name:     "Evil Rabbit",
			Email:    "evil@rabbit.com",
			ImageURL: "/customers/evil-rabbit.png",
		},
		{
			ID:       uuid.MustParse("3958dc9e-712f-4377-85e9-fec4b6a6442a"),
			Name:     "Delba de Oliveira",
			Email:    "delba@oliveira.com",
			ImageURL: "/customers/delba-de-oliveira.png",
		},
		{
			ID:       uuid.MustParse("3958dc9e-742f-4377-85e9-fec4b6a6442a"),
			Name:     "Lee Robinson",
			Email:    "lee@robinson.com",
			ImageURL: "/customers/lee-robinson.png",
		},
		{
			ID:       uuid.MustParse("76d65c26-f784-44a2-ac19-586678f7c2f2"),
			Name:     "Michael Novotny",
			Email:    "michael@novotny.com",
			ImageURL: "/customers/michael-novotny.png",
		},
		{
			ID:       uuid.MustParse("cc27c14a-0acf-4f4a-a6c9-d45682c144b9"),
			Name:     "Amy Burns",
			Email:    "amy@burns.com",
			ImageURL: "/customers/amy-burns.png",
		},
		{
			ID:       uuid.MustParse("13d07535-c59e-4157-a011-f8d2ef4e0cbb"),
			Name:     "Balazs Orban",
			Email:    "balazs@orban.com",
			ImageURL: "/customers/balazs-orban.png",
		},
	}
}

func defaultInvoices(c []models.Customer) []models.Invoice {
	inv := func(customer int, amount int64, status, date string) models.Invoice {
		return models.Invoice{
			CustomerID: c[customer].ID,
			Amount:     amount,
			Status:     status,
			Date:       mustDate(date),
		}
	}
	return []models.Invoice{
		inv(0, 15795, models.InvoicePending, "2022-12-06"),
		inv(1, 20348, models.InvoicePending, "2022-11-14"),
		inv(4, 3040, models.InvoicePaid, "2022-10-29"),
		inv(3, 44800, models.InvoicePaid, "2023-09-10"),
		inv(5, 34577, models.InvoicePending, "2023-08-05"),
		inv(2, 54246, models.InvoicePending, "2023-07-16"),
		inv(0, 666, models.InvoicePending, "2023-06-27"),
		inv(3, 32545, models.InvoicePaid, "2023-06-09"),
		inv(4, 1250, models.InvoicePaid, "2023-06-17"),
		inv(5, 8546, models.InvoicePaid, "2023-06-07"),
		inv(1, 500, models.InvoicePaid, "2023-08-19"),
		inv(5, 8945, models.InvoicePaid, "2023-06-03"),
		inv(2, 1000, models.InvoicePaid, "2022-06-05"),
	}
}

func defaultRevenue() []models.Revenue {
	return []models.Revenue{
		{Month: "Jan", Revenue: 2000},
		{Month: "Feb", Revenue: 1800},
		{Month: "Mar", Revenue: 2200},
		{Month: "Apr", Revenue: 2500},
		{Month: "May", Revenue: 2300},
		{Month: "Jun", Revenue: 3200},
		{Month: "Jul", Revenue: 3500},
		{Month: "Aug", Revenue: 3700},
		{Month: "Sep", Revenue: 2500},
		{Month: "Oct", Revenue: 2800},
		{Month: "Nov", Revenue: 3000},
		{Month: "Dec", Revenue: 4800},
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
