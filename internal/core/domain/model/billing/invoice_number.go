package billing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateInvoiceNumber produces a human-readable invoice number of the form
// INV-20260901-a3f19c: the intake date plus a 6-hex-digit random suffix.
//
// The suffix alone does not guarantee uniqueness under concurrent creation;
// the invoices table carries a unique constraint on the number and callers
// retry once with a fresh suffix on collision.
func GenerateInvoiceNumber(now time.Time) string {
	suffix := make([]byte, 3)
	// rand.Read on crypto/rand never fails on supported platforms
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("INV-%s-%s", now.UTC().Format("20060102"), hex.EncodeToString(suffix))
}
