package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	StatusSuccess PaymentStatus = "success"
	StatusFailed  PaymentStatus = "failed"
	StatusPending PaymentStatus = "pending"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusPending:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodPaypal       PaymentMethod = "paypal"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCrypto       PaymentMethod = "crypto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPaypal, MethodBankTransfer, MethodCrypto:
		return true
	}
	return false
}

// Payment is immutable after creation. TransactionID is unique across the
// collection, enforced by a store-level index.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Amount        float64            `bson:"amount" json:"amount"`
	Receiver      string             `bson:"receiver" json:"receiver"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	Method        PaymentMethod      `bson:"method" json:"method"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Currency      string             `bson:"currency" json:"currency"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreatePaymentInput struct {
	Amount      float64 `json:"amount" validate:"required"`
	Receiver    string  `json:"receiver" validate:"required"`
	Status      string  `json:"status" validate:"required|in:success,failed,pending"`
	Method      string  `json:"method" validate:"required|in:credit_card,debit_card,paypal,bank_transfer,crypto"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
}

// PaymentFilter selects payments by status/method equality, receiver substring
// (case-insensitive) and createdAt range [From, To). Zero values mean "any".
type PaymentFilter struct {
	Status   PaymentStatus
	Method   PaymentMethod
	Receiver string
	From     time.Time
	To       time.Time
}

type PaymentPage struct {
	Payments   []*Payment `json:"payments"`
	Total      int64      `json:"total"`
	Page       int64      `json:"page"`
	TotalPages int64      `json:"totalPages"`
}
