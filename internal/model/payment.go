// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Payment statuses as stored by the platform API.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
	PaymentStatusOverdue = "Overdue"
)

// Payment represents a fee payment record from the platform API.
type Payment struct {
	ID          string     `json:"_id"`
	Student     StudentRef `json:"student,omitempty"`
	Amount      float64    `json:"amount"`
	PaymentDate string     `json:"paymentDate,omitempty"`
	Method      string     `json:"method,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// IsPaid returns true if the payment has been settled.
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}
