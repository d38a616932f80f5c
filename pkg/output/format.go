// Package output provides utilities for formatting and displaying reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/advisor-forecast/internal/report"
	"github.com/iwvelando/advisor-forecast/pkg/format"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, r *report.Report) {
	if r == nil {
		return
	}
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Report for %s (%d) ---\n", r.ClientName, r.Year)

	fmt.Fprintf(w, "\nHoldings (life expectancy %d years)\n", r.LifeExpectancy)
	fmt.Fprintf(w, "Name | Kind | Bucket | Years | Current | Projected\n")
	fmt.Fprintf(w, "____ | ____ | ______ | _____ | _______ | _________\n")
	for _, h := range r.PerAsset {
		fmt.Fprintf(w, "%s | %s | %s | %d | %s | %s\n",
			h.Name, h.Kind, h.Bucket, h.Horizon, format.Currency(h.Current), format.Currency(h.Future))
	}

	t := r.Totals
	fmt.Fprintf(w, "\nTotals         | Current | Projected\n")
	fmt.Fprintf(w, "Liquid         | %s | %s\n", format.Currency(t.CurrentLiquid), format.Currency(t.FutureLiquid))
	fmt.Fprintf(w, "To be sold     | %s | %s\n", format.Currency(t.CurrentToBeSold), format.Currency(t.FutureToBeSold))
	fmt.Fprintf(w, "Fixed          | %s | %s\n", format.Currency(t.CurrentFixed), format.Currency(t.FutureFixed))
	fmt.Fprintf(w, "Realizable     | %s | %s\n", format.Currency(t.CurrentRealizable()), format.Currency(t.FutureRealizable()))
	fmt.Fprintf(w, "All            | %s | %s\n", format.Currency(t.CurrentTotal()), format.Currency(t.FutureTotal()))

	if len(r.Diversification) > 0 {
		fmt.Fprintf(w, "\nDiversification\n")
		for _, s := range r.Diversification {
			_, _ = p.Fprintf(w, "  %s: %s (%.2f%%)\n", s.Label, format.Currency(s.Value), s.Percentage)
		}
	}

	b := r.Budget
	fmt.Fprintf(w, "\nNet worth: %s (debts %s)\n", format.Currency(r.NetWorth), format.Currency(r.TotalDebt))
	fmt.Fprintf(w, "Insurance budget: %s to %s (%s of %s)\n",
		format.Currency(b.Recommendation.MinBudget), format.Currency(b.Recommendation.MaxBudget),
		format.Percent(b.Recommendation.MaxBudgetPercentage), b.Recommendation.Basis)
	if b.Proposed != nil {
		fmt.Fprintf(w, "Proposed budget: %s (%s the recommended range)\n", format.Currency(*b.Proposed), b.Position)
	}

	if len(r.Beneficiaries.Shares) > 0 {
		fmt.Fprintf(w, "\nBeneficiaries (realizable %s, unassigned %s)\n",
			format.Currency(r.Beneficiaries.TotalRealizable), format.Currency(r.Beneficiaries.Unassigned))
		fmt.Fprintf(w, "Name | Real | Ideal | Additional required\n")
		for _, s := range r.Beneficiaries.Shares {
			s = s.Rounded()
			_, _ = p.Fprintf(w, "%s | %s (%.2f%%) | %s (%.2f%%) | %s\n", s.Name,
				format.Currency(s.Real), s.RealPercentage,
				format.Currency(s.Ideal), s.IdealPercentage,
				format.Currency(s.AdditionalRequired))
		}
	}

	l := r.Liquidity
	fmt.Fprintf(w, "\nLiquidity: %s projected, %s preserved, %s towards goals\n",
		format.Currency(l.FutureLiquid), format.Currency(l.LiquidityPreserved), format.Currency(l.LiquidityAllocatedToGoals))
	if l.Goals.Count > 0 {
		fmt.Fprintf(w, "Goals: %s (%s philanthropic), surplus/shortfall %s\n",
			format.Currency(l.Goals.Total), format.Currency(l.Goals.Philanthropic), format.Currency(l.SurplusShortfall))
	}
	fmt.Fprintf(w, "Maximum insurable amount: %s\n", format.Currency(l.MaxInsurableAmount))

	if len(r.Stakeholders) > 0 {
		fmt.Fprintf(w, "\nBusiness insurance\n")
		fmt.Fprintf(w, "Business | Name | Kind | Need | Priority | Want | Additional coverage\n")
		for _, s := range r.Stakeholders {
			_, _ = p.Fprintf(w, "%s | %s | %s | %s | %.0f%% | %s | %s\n",
				s.Business, s.Name, s.Kind, format.Currency(s.Need), s.Priority,
				format.Currency(s.Want), format.Currency(s.AdditionalCoverage))
		}
	}

	if len(r.Purposes.Purposes) > 0 {
		fmt.Fprintf(w, "\nTotal insurable needs\n")
		for _, pr := range r.Purposes.Purposes {
			_, _ = p.Fprintf(w, "  %s: need %s, %.0f%% priority, want %s\n",
				pr.Name, format.Currency(pr.Need), pr.Priority, format.Currency(pr.Want))
		}
		fmt.Fprintf(w, "  Total want: %s\n", format.Currency(r.Purposes.Want))
	}

	if tf := r.TaxFreeze; tf != nil {
		fmt.Fprintf(w, "\nTax freeze in %d (%d years): %s now, %s at freeze, growth %s\n",
			tf.Year, tf.Years, format.Currency(tf.Current), format.Currency(tf.AtFreeze), format.Currency(tf.Growth))
	}

	if len(r.Timeline) > 0 {
		fmt.Fprintf(w, "\nYear | Assets | Liabilities | Net\n")
		fmt.Fprintf(w, "____ | ______ | ___________ | ___\n")
		for _, row := range r.Timeline {
			_, _ = p.Fprintf(w, "%s | $%.2f | $%.2f | $%.2f\n",
				strconv.Itoa(row.Year), row.Assets, row.Liabilities, row.Net())
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings\n")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

// CsvFormat writes the yearly timeline in comma-separated value format with
// one column per instrument, in order of first appearance.
func CsvFormat(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)

	var names []string
	seen := make(map[string]bool)
	if r != nil {
		for _, row := range r.Timeline {
			for _, e := range row.Entries {
				if !seen[e.Name] {
					seen[e.Name] = true
					names = append(names, e.Name)
				}
			}
		}
	}

	header := append([]string{"year", "assets", "liabilities", "net"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	if r != nil {
		for _, row := range r.Timeline {
			values := make(map[string]float64, len(row.Entries))
			for _, e := range row.Entries {
				values[e.Name] = e.Value
			}
			record := []string{
				strconv.Itoa(row.Year),
				amount(row.Assets),
				amount(row.Liabilities),
				amount(row.Net()),
			}
			for _, name := range names {
				if v, ok := values[name]; ok {
					record = append(record, amount(v))
				} else {
					record = append(record, "")
				}
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString renders CsvFormat into a string.
func CsvString(r *report.Report) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat writes the report as indented JSON.
func JSONFormat(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
