package dto

// AutoCompleteResponse represents the JSON response from the auto-complete
// endpoint. Only candidate symbols are used; prices must be resolved
// individually through get-quotes.
type AutoCompleteResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
	} `json:"quotes"`
}
