package normalize

import "marketlens/types"

// RawStock is the permissive decode shape for a quote/series payload.
// Numeric fields are pointers so an absent alias is distinguishable from
// a real zero when walking the fallback chain.
type RawStock struct {
	MongoID       string             `json:"_id"`
	ID            string             `json:"id"`
	Symbol        string             `json:"symbol"`
	Name          string             `json:"name"`
	CompanyName   string             `json:"company_name"`
	Price         *float64           `json:"price"`
	Close         *float64           `json:"close"`
	Change        *float64           `json:"change"`
	ChangePercent *float64           `json:"changePercent"`
	ChangeSnake   *float64           `json:"change_percent"`
	Date          string             `json:"date"`
	Timestamp     string             `json:"timestamp"`
	Historical    []types.PricePoint `json:"historical"`
	Prices        []types.PricePoint `json:"prices"`
}

// Stock converts one backend quote payload into the canonical record.
// Same contract as Article: pure, never fails, nil in means nil out.
// Historical elements are passed through structurally with no per-point
// validation or date parsing.
func Stock(raw *RawStock) *types.Stock {
	if raw == nil {
		return nil
	}

	series := raw.Historical
	if series == nil {
		series = raw.Prices
	}
	historical := make([]types.PricePoint, len(series))
	copy(historical, series)

	return &types.Stock{
		ID:            firstString(raw.MongoID, raw.ID),
		Symbol:        raw.Symbol,
		Name:          firstString(raw.Name, raw.CompanyName),
		Price:         firstFloat(raw.Price, raw.Close),
		Change:        firstFloat(raw.Change),
		ChangePercent: firstFloat(raw.ChangePercent, raw.ChangeSnake),
		Date:          firstString(raw.Date, raw.Timestamp),
		Historical:    historical,
	}
}

// Stocks normalizes a slice, preserving nil pass-through per element.
func Stocks(raws []*RawStock) []*types.Stock {
	out := make([]*types.Stock, len(raws))
	for i, raw := range raws {
		out[i] = Stock(raw)
	}
	return out
}
