// Package source holds the wire shapes of the remote payments API.
package source

import "encoding/json"

// PaymentRecord is one raw payment line as returned by GET /v2/payments.
// Field presence varies across tenants; everything except ID is optional.
type PaymentRecord struct {
	ID               json.Number `json:"id"`
	PatientID        string      `json:"patient_id"`
	PayerName        string      `json:"payer_name"`
	Status           string      `json:"status"`
	CreatedAt        string      `json:"created_at"`
	Date             string      `json:"date,omitempty"`
	AdjustmentAmount *float64    `json:"adjustment_amount"`
	DenialReason     string      `json:"denial_reason"`
	InvoiceID        string      `json:"invoice_id"`
}

// PaymentsEnvelope is the success response body of the payments endpoint.
type PaymentsEnvelope struct {
	Data []PaymentRecord `json:"data"`
}
