// Package strategy provides the built-in decision rules and a registry that
// builds them by name. Every strategy here works out its side of a turn by
// identity, so it behaves the same whether it is player 1 or player 2.
package strategy
