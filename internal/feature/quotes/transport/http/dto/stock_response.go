// Package dto defines data transfer objects for the quotes feature's HTTP transport layer.
package dto

// StockResponse is one resolved instrument in a search or list response.
type StockResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
}
