// Package simworld is a deterministic in-memory colony that satisfies every
// contract in package world. Tests use it to stage scenarios; the run command
// uses it to drive a colony without a live host.
package simworld
