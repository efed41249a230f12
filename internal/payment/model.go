package payment

// Canonical Mercado Pago payment statuses this system reacts to. The gateway
// reports more granular states (in_process, refunded, charged_back); anything
// not listed here leaves fulfillment untouched.
const (
	StatusApproved  = "approved"
	StatusPending   = "pending"
	StatusInProcess = "in_process"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

type PreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	PictureURL string  `json:"picture_url,omitempty"`
	CurrencyID string  `json:"currency_id"`
}

type Payer struct {
	Name  string
	Email string
	Phone string
}

type PreferenceRequest struct {
	ExternalReference string
	Items             []PreferenceItem
	Payer             Payer
}

type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type PaymentInfo struct {
	ID                string
	Status            string
	ExternalReference string
	TransactionAmount float64
}
