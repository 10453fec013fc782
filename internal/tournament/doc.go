// Package tournament runs a round-robin of iterated matches over a roster
// and aggregates every turn's payoff into a shared scoreboard.
package tournament
