package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type CurrencyRequest struct {
	Code string `query:"code" json:"code" validate:"required,len=3,uppercase"`
}

type SelectCurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3,uppercase"`
}

type SelectPairRequest struct {
	Code string `json:"code" validate:"required,len=6,uppercase"`
}

type FundamentalNoteRequest struct {
	Code string `query:"code" json:"code" validate:"required,len=3,uppercase"`
	Text string `json:"text"`
}

type TechnicalNoteRequest struct {
	Code string `query:"code" json:"code" validate:"required,len=6,uppercase"`
	Text string `json:"text"`
}
