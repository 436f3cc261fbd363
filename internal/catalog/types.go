package catalog

const (
	// MaxRows caps how many rows of a generated query reach the LLM.
	MaxRows = 20

	NoResults = "I couldn't find any products matching your request."
)

// Product is one row of the product table.
type Product struct {
	Link         string  `json:"product_link"`
	Title        string  `json:"title"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	AvgRating    float64 `json:"avg_rating"`
	TotalRatings int     `json:"total_ratings"`
}

// Rows is a query result rendered as text.
type Rows struct {
	Columns   []string
	Values    [][]string
	Truncated bool
}

// Len returns the number of rows.
func (r Rows) Len() int {
	return len(r.Values)
}
