package models

import "time"

// AppStoreTransaction is a purchase reported by the native shell after
// StoreKit completes it.
type AppStoreTransaction struct {
	UserID                string     `json:"user_id"`
	TransactionID         string     `json:"transaction_id"`
	OriginalTransactionID string     `json:"original_transaction_id"`
	ProductID             string     `json:"product_id"`
	PurchaseDate          *time.Time `json:"purchase_date"`
	ExpiresDate           *time.Time `json:"expires_date"`
	Environment           string     `json:"environment"`
}

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)
