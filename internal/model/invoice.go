package model

// InvoiceStatus статус счёта
type InvoiceStatus string

const (
	InvoicePaid      InvoiceStatus = "PAYEE"
	InvoicePending   InvoiceStatus = "EN_ATTENTE"
	InvoiceCancelled InvoiceStatus = "ANNULEE"
)

// PaymentMode способ оплаты
type PaymentMode string

const (
	PaymentCash     PaymentMode = "ESPECES"
	PaymentCard     PaymentMode = "CARTE"
	PaymentCheque   PaymentMode = "CHEQUE"
	PaymentTransfer PaymentMode = "VIREMENT"
)

// Invoice счёт за приём (billing, /api/factures)
type Invoice struct {
	ID            int64         `json:"idFacture"`
	Amount        float64       `json:"montant"`
	Status        InvoiceStatus `json:"statut"`
	PaymentMode   *PaymentMode  `json:"modePaiement"`
	CreatedAt     string        `json:"dateCreation"`
	PaidAt        string        `json:"datePaiement"`
	AppointmentID int64         `json:"rendezVousId"`
	CabinetID     int64         `json:"cabinetId"`
	PatientID     *int64        `json:"patientId"`
	Number        string        `json:"numeroFacture"`
}
