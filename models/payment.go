package models

// CardDetails is the card form submitted with a charge.
type CardDetails struct {
	Holder   string `json:"holder"`
	Number   string `json:"number"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
	CVC      string `json:"cvc"`
}

// Complete reports whether every field a processor needs is present.
func (c CardDetails) Complete() bool {
	return c.Number != "" && c.ExpMonth > 0 && c.ExpYear > 0 && c.CVC != ""
}

// ChargeRequest is what an authorizer sees for one attempt.
type ChargeRequest struct {
	BookingID  string
	CustomerID string
	Amount     float64
	Currency   string
	Card       CardDetails
}

// ChargeResult is the authorizer's verdict. Declines are results, not errors.
type ChargeResult struct {
	Approved  bool
	Reference string
	Reason    string
}

// CardSession describes how the client should collect card details.
// A nil URL means the embedded form.
type CardSession struct {
	URL      *string `json:"url"`
	Provider string  `json:"provider"`
}
