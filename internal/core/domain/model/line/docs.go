// Package line provides domain entities and business logic for order line
// management in the tableside system. It implements the OrderLine aggregate
// with lifecycle management and state transitions.
//
// The package includes:
//   - OrderLine: One item-and-quantity entry of a table's order, independently status-tracked
//   - Status: A state machine that enforces the legal status graph
//
// Key business rules:
//   - Lines must reference a valid table and catalog item and carry a positive quantity
//   - Status follows the workflow pending -> accepted -> preparing -> served,
//     with cancellation possible from every non-terminal status
//   - served and cancelled are terminal
//   - Re-requesting the current status is a legal no-op, making retries safe
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package line
