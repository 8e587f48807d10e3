package entity

import "time"

// NumericSummary aggregates one numeric column for one user.
type NumericSummary struct {
	Column string
	Count  int
	Sum    float64
	Mean   float64
	Median float64
}

// UserSummary aggregates the rows of one user.
type UserSummary struct {
	User      string
	Rows      int
	FirstDate time.Time
	LastDate  time.Time
	Numeric   []NumericSummary
}

// Analysis is the content of the Analysis tab.
type Analysis struct {
	NumericColumns []string
	Users          []UserSummary
}
