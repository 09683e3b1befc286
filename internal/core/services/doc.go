// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never touch storage or the network directly; everything
// flows through the driven ports so adapters stay swappable in tests.
package services
