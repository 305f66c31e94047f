package storage

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// GenerateID generates a unique ID for storage entities.
func GenerateID() string {
	return uuid.New().String()
}

// NewOrderID generates a human-readable order identifier in the
// "ORD-NNNN-X" format customers quote in support chats.
func NewOrderID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return fmt.Sprintf("ORD-%d", time.Now().UnixNano()%10000)
	}
	letter, err := rand.Int(rand.Reader, big.NewInt(26))
	if err != nil {
		letter = big.NewInt(0)
	}
	return fmt.Sprintf("ORD-%04d-%c", n.Int64(), 'A'+rune(letter.Int64()))
}

// NewTransactionID generates a return transaction identifier.
func NewTransactionID() string {
	return fmt.Sprintf("txn_%d", time.Now().UnixNano())
}
