package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/printer"
	"github.com/spf13/cobra"
)

var (
	bodyRatio    string
	bodyFraction float64
	bodyEnergy   int
	bodyLimit    int
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Compute a ratio body for an energy budget",
	Long: `Scale a work:carry:move ratio to the largest body a facility can afford.

Examples:
  # Paver body at full budget
  warren body --ratio 1,3,2 --energy 1300 --limit 5

  # Cart using half the budget
  warren body --ratio 0,2,1 --fraction 0.5 --energy 1300`,
	RunE: runBody,
}

func init() {
	bodyCmd.Flags().StringVar(&bodyRatio, "ratio", "", "Work,carry,move proportion (e.g. 1,3,2)")
	bodyCmd.Flags().Float64Var(&bodyFraction, "fraction", 1, "Share of the energy budget to spend")
	bodyCmd.Flags().IntVar(&bodyEnergy, "energy", 300, "Facility max energy")
	bodyCmd.Flags().IntVar(&bodyLimit, "limit", 0, "Cap on the scale factor (0 for none)")
	_ = bodyCmd.MarkFlagRequired("ratio")
	rootCmd.AddCommand(bodyCmd)
}

func runBody(cmd *cobra.Command, args []string) error {
	ratio, err := parseRatio(bodyRatio)
	if err != nil {
		return printer.Error("invalid ratio", err.Error(), []string{"Use three comma-separated counts: --ratio 1,3,2"})
	}
	ratio.Fraction = bodyFraction
	ratio.Limit = bodyLimit

	if err := ratio.Validate(); err != nil {
		return printer.Error("invalid ratio", err.Error(), nil)
	}

	parts := body.Ratio(ratio, bodyEnergy)
	if len(parts) == 0 {
		printer.Warning("Budget of %d energy cannot afford a single %d,%d,%d unit\n",
			int(float64(bodyEnergy)*bodyFraction), ratio.Work, ratio.Carry, ratio.Move)
		return nil
	}

	printer.Printf("%s (%d parts, %d energy)\n", body.Describe(parts), len(parts), body.Price(parts))
	return nil
}

// parseRatio reads "W,C,M".
func parseRatio(s string) (body.RatioSpec, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return body.RatioSpec{}, fmt.Errorf("expected W,C,M, got %q", s)
	}

	var counts [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return body.RatioSpec{}, fmt.Errorf("invalid count %q: %w", f, err)
		}
		counts[i] = n
	}
	return body.RatioSpec{Work: counts[0], Carry: counts[1], Move: counts[2]}, nil
}
