// Package dto defines data transfer objects for the Yahoo Finance API responses.
package dto

// GetQuotesResponse represents the JSON response from the
// market/v2/get-quotes endpoint.
type GetQuotesResponse struct {
	QuoteResponse struct {
		Result []QuoteResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteResult is one quoted instrument within a get-quotes response.
type QuoteResult struct {
	Symbol             string   `json:"symbol"`
	LongName           string   `json:"longName"`
	ShortName          string   `json:"shortName"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	QuoteSummary       *struct {
		SummaryDetail *struct {
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
			PreviousClose      *float64 `json:"previousClose"`
		} `json:"summaryDetail"`
	} `json:"quoteSummary"`
}
