// Package ledger provides the persisted state of a Warren colony and its Redis schema.
//
// # Overview
//
// A colony is rehydrated fresh every cycle. Nothing a mission learns during a cycle is
// kept in memory once the cycle ends; everything that must survive is written to the
// ledger. The ledger holds three kinds of records:
//
// Mission records hold the per-mission roster (role → ordered unit names), the
// mission's persisted configuration (boost flag, max override, prespawn interval),
// the naming counter used to disambiguate recruit names, and the road repair queue.
//
// Unit records hold everything a single unit must remember between cycles:
// preparation state, boosts, its partner, and its employer when leased.
//
// Lease registries map a pooled role to the unit currently leased for it. There is
// one registry per production facility.
//
// # Cycle Model
//
// The ledger is read once at cycle start into a Snapshot and written once at cycle
// end:
//
//	snap, err := client.Load(ctx, tick)
//	if err != nil {
//		return err
//	}
//
//	// ... every mission phase reads and mutates snap ...
//
//	if err := client.Commit(ctx, snap); err != nil {
//		return err
//	}
//
// # Redis Schema
//
// All keys are namespaced by colony name so several colonies can share one server.
//
// Missions: warren:{colony}:mission:{operation}:{mission}
// Units: warren:{colony}:unit:{unit_name}
// Lease registries: warren:{colony}:leases:{facility_id}
//
// Records are stored as hashes. List and map fields are JSON-encoded into a single
// hash field.
package ledger
