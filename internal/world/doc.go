// Package world defines the contracts the workforce engine consumes from the
// host colony: the live-unit table, production facilities, the map, structures,
// and the opaque travel and pathing primitives.
//
// Nothing in this package holds state across cycles. An Env is assembled by the
// cycle driver at the start of every cycle and discarded at its end.
package world
