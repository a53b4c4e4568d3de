package dto

import "github.com/soketoanvn/vn_ledger_app/internal/core/domain"

// AccountResponse is the API shape of a chart account.
type AccountResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	NormalSide  string `json:"normalSide"`
	Level       int    `json:"level"`
	ParentCode  string `json:"parentCode,omitempty"`
	IsAggregate bool   `json:"isAggregate"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Code:        a.Code,
		Name:        a.Name,
		Category:    string(a.Category),
		NormalSide:  string(a.NormalSide),
		Level:       a.Level,
		ParentCode:  a.ParentCode,
		IsAggregate: a.IsAggregate,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
