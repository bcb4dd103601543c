// Package order provides domain entities and business logic for work order
// management in the laundry system. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, service items, and lifecycle
//   - Item: A value object for a single service line (type, quantity, unit price)
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, customer, and at least one item
//   - Order status follows a defined workflow:
//     Received -> InProcess -> ReadyForDelivery -> Delivered -> Billed,
//     with Cancelled reachable from any non-terminal state
//   - balanceAmount always equals totalAmount minus paidAmount
//   - Monetary values use fixed-point decimals, never floats
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
