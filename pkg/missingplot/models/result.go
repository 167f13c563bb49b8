package models

// Estimate is an estimated value for one missing cell, keyed by the cell's
// index in the table it was computed from.
type Estimate struct {
	Index int     `json:"index"`
	Row   string  `json:"row"`
	Col   string  `json:"col"`
	Value float64 `json:"value"`
}

// Inputs holds the design counts and sums a formula read.
type Inputs struct {
	// Rows is r, the number of distinct row labels.
	Rows int `json:"rows"`
	// Cols is c, the number of distinct column labels.
	Cols int `json:"cols"`
	// Grand is G, the sum of present values.
	Grand float64 `json:"grand"`
	// RowSums maps each row label the formula used to its sum.
	RowSums map[string]float64 `json:"row_sums"`
	// ColSums maps each column label the formula used to its sum.
	ColSums map[string]float64 `json:"col_sums"`
}

// EstimationResult is the outcome of one estimation call.
type EstimationResult struct {
	// Topology names the arrangement of the missing cells.
	Topology string `json:"topology"`
	// Formula names the estimator applied.
	Formula string `json:"formula"`
	// Exact reports whether the estimator reproduces the true value of
	// additive data.
	Exact bool `json:"exact"`
	// Estimates holds one entry per missing cell, in table order.
	Estimates []Estimate `json:"estimates"`
	// Inputs holds the counts and sums the estimator used.
	Inputs Inputs `json:"inputs"`
}

// BatchItem is the outcome of estimating one named design of a batch.
type BatchItem struct {
	Name   string            `json:"name"`
	Result *EstimationResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}
