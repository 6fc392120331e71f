package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberDigits is the length of generated account numbers. Matches the
// 20-character column limit with room for the prefix.
const accountNumberDigits = 12

// GenerateAccountNumber produces a new account number of the form
// "ACC" followed by 12 cryptographically random digits. Uniqueness is
// ultimately enforced by the accounts table's unique constraint; the caller
// retries on duplicate.
func GenerateAccountNumber() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("ACC%0*d", accountNumberDigits, n), nil
}
