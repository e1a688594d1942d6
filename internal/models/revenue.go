package models

// Revenue is the revenue total for one month.
type Revenue struct {
	// Month is a short month code such as "Jan". Unique per table.
	Month string

	Revenue int64
}
