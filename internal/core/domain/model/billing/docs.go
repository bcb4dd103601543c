// Package billing provides domain entities for invoicing in the laundry
// system.
//
// The package includes:
//   - Invoice: The billable document raised exactly once per work order
//   - LineItem: An immutable snapshot of an order service line at billing time
//   - Payment: A settlement record against an invoice
//   - PaymentStatus: Derived settlement state (pending, partial, paid)
//   - GenerateInvoiceNumber: Human-readable invoice number generation
//
// Key business rules:
//   - At most one invoice may exist per order; the unique order reference in
//     storage is the idempotency guard
//   - total = subtotal + tax and balance = total − paid hold at all times
//   - Payment status is always derived from the paid/total ratio, never set
//   - Monetary values use fixed-point decimals, never floats
package billing
