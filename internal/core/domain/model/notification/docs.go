// Package notification provides domain entities for customer messaging in
// the laundry system.
//
// The package includes:
//   - Sender: A configured provider identity and credential bundle
//   - Template: A parametrized message body with placeholders
//   - Record: The logged attempt-group of sending one customer message
//   - QueueEntry: A durable, retryable unit of pending notification work
//   - ProviderKind: The supported third-party messaging back-ends
//
// Key business rules:
//   - At most one sender is the default at any time
//   - A record is created once per dispatch and updated in place as retries
//     proceed; retryCount never exceeds maxRetries
//   - Queue entries are claimed with a compare-and-set so at most one entry
//     per record is ever processing
//   - Rescheduling uses exponential backoff, so scheduledAt strictly
//     increases across a retry sequence
package notification
