// Package dto defines the request and response shapes of the wizard API.
// Field names mirror the form field names so inline-error maps line up with
// the client's inputs without translation.
package dto

type IdentityRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	WorkEmail   string `json:"workEmail"`
	AcceptTerms bool   `json:"acceptTerms"`
}

type VerifyRequest struct {
	Code string `json:"code"`
}

type PasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type BusinessRequest struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Website     string `json:"website"`
}
