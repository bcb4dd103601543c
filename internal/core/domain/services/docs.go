// Package services provides domain services that operate across the laundry
// domain model without naturally belonging to a single aggregate root.
//
// The package includes:
//   - TemplateRenderer: Fills notification-template placeholders from a work
//     order snapshot, blanking unresolved placeholders so template syntax
//     never reaches customers
package services
