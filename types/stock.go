package types

// Stock is the canonical quote record consumed by the dashboard.
type Stock struct {
	ID            string       `json:"id"`
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	Date          string       `json:"date"`
	Historical    []PricePoint `json:"historical"`
}

// PricePoint is a single entry in a stock's historical series.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}
