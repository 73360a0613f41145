// Package report formats persisted colony state for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dyluth/warren/pkg/ledger"
)

// OutputFormat selects how records are written.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatJSONL   OutputFormat = "jsonl"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatDefault, OutputFormatJSONL:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

// FormatRoster writes one row per rostered unit.
// Columns: MISSION, ROLE, UNIT, PARTNER, BOOSTS. Returns the number of rows written.
func FormatRoster(w io.Writer, snap *ledger.Snapshot, colony string) int {
	missions := snap.Missions()
	if len(missions) == 0 {
		fmt.Fprintf(w, "No missions found for colony '%s'\n", colony)
		return 0
	}

	fmt.Fprintf(w, "Rosters for colony '%s'%s:\n\n", colony, atTick(snap.Tick))
	fmt.Fprintf(w, "%-24s %-10s %-24s %-24s %s\n",
		"MISSION", "ROLE", "UNIT", "PARTNER", "BOOSTS")
	fmt.Fprintf(w, "%-24s %-10s %-24s %-24s %s\n",
		"------------------------", "----------", "------------------------", "------------------------", "----------")

	rows := 0
	for _, m := range missions {
		for _, role := range sortedRoles(m.Roster) {
			for _, name := range m.Roster[role] {
				partner, boosts := "-", "-"
				if snap.HasUnit(name) {
					rec := snap.Unit(name)
					partner = orDash(rec.Partner)
					boosts = formatBoosts(rec)
				}
				fmt.Fprintf(w, "%-24s %-10s %-24s %-24s %s\n",
					truncate(m.Operation+"/"+m.Name, 24),
					truncate(role, 10),
					truncate(name, 24),
					truncate(partner, 24),
					boosts,
				)
				rows++
			}
		}
	}

	unitMsg := "unit"
	if rows != 1 {
		unitMsg = "units"
	}
	fmt.Fprintf(w, "\n%d %s across %d missions\n", rows, unitMsg, len(missions))
	return rows
}

// FormatLeases writes the lease registry of every facility.
// Columns: FACILITY, ROLE, UNIT, EMPLOYER, RENEWED. Returns the number of leases written.
func FormatLeases(w io.Writer, snap *ledger.Snapshot, colony string) int {
	facilities := snap.Facilities()
	rows := 0

	for _, fac := range facilities {
		leases := snap.Leases(fac)
		roles := make([]string, 0, len(leases))
		for role := range leases {
			roles = append(roles, role)
		}
		sort.Strings(roles)

		for _, role := range roles {
			if rows == 0 {
				fmt.Fprintf(w, "Leases for colony '%s'%s:\n\n", colony, atTick(snap.Tick))
				fmt.Fprintf(w, "%-12s %-10s %-24s %-24s %s\n",
					"FACILITY", "ROLE", "UNIT", "EMPLOYER", "RENEWED")
				fmt.Fprintf(w, "%-12s %-10s %-24s %-24s %s\n",
					"------------", "----------", "------------------------", "------------------------", "--------")
			}

			name := leases[role]
			employer, renewed := "-", "-"
			if snap.HasUnit(name) {
				rec := snap.Unit(name)
				employer = orDash(rec.Employer)
				renewed = formatAge(snap.Tick, rec.LastEmployed)
			}
			fmt.Fprintf(w, "%-12s %-10s %-24s %-24s %s\n",
				truncate(fac, 12),
				truncate(role, 10),
				truncate(name, 24),
				truncate(employer, 24),
				renewed,
			)
			rows++
		}
	}

	if rows == 0 {
		fmt.Fprintf(w, "No leases found for colony '%s'\n", colony)
		return 0
	}

	leaseMsg := "lease"
	if rows != 1 {
		leaseMsg = "leases"
	}
	fmt.Fprintf(w, "\n%d %s found\n", rows, leaseMsg)
	return rows
}

// FormatJSONL writes mission records as line-delimited JSON.
func FormatJSONL(w io.Writer, missions []*ledger.MissionRecord) error {
	for _, m := range missions {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal mission to JSON: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s\n", string(data))
		if err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

func sortedRoles(roster map[string][]string) []string {
	roles := make([]string, 0, len(roster))
	for role := range roster {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// formatBoosts shows applied boosts, then pending ones with a trailing '?'.
func formatBoosts(rec *ledger.UnitRecord) string {
	var parts []string
	parts = append(parts, rec.AppliedBoosts...)
	for _, b := range rec.PendingBoosts {
		parts = append(parts, b+"?")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// atTick is empty for snapshots read outside a cycle.
func atTick(tick int64) string {
	if tick <= 0 {
		return ""
	}
	return fmt.Sprintf(" (tick %d)", tick)
}

// formatAge shows how many ticks ago a lease was renewed.
func formatAge(now, then int64) string {
	if then == 0 {
		return "never"
	}
	if now <= 0 {
		return fmt.Sprintf("tick %d", then)
	}
	if now <= then {
		return "now"
	}
	return fmt.Sprintf("%d ago", now-then)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
