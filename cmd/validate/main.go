// Command validate checks the opportunity dataset for the properties the
// dashboard expects but does not enforce: unique ids, scores in [0,1], known
// priority labels, non-negative values, type-appropriate reference numbers
// and geocodable addresses. It prints the dataset and a pass/fail report.
//
// Usage:
//
//	go run ./cmd/validate                 # embedded dataset
//	go run ./cmd/validate -file data.yaml # alternate dataset
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/primex/opportunity-dashboard/internal/dashboard"
	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/sample"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "path to an alternate YAML dataset (default: embedded sample)")
	flag.Parse()

	provider := sample.NewProvider()
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: read dataset: %v\n", err)
			os.Exit(1)
		}
		provider = sample.NewProviderFromYAML(data)
	}

	if code := run(provider, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(provider *sample.Provider, out io.Writer) int {
	fmt.Fprintln(out, "=== Opportunity Dataset Validation ===")
	fmt.Fprintln(out)

	records, err := provider.Opportunities(nil)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load dataset: %v\n", err)
		return 1
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "FATAL: dataset is empty")
		return 1
	}

	renderRecords(out, records)

	phases := []*phase{
		validateIDs(records),
		validateScores(records),
		validatePriorities(records),
		validateValues(records),
		validateReferences(records),
		validateAddresses(records),
	}

	fmt.Fprintln(out)
	allPassed := renderSummary(out, phases)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func renderRecords(out io.Writer, records []domain.Opportunity) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"ID", "Type", "Reference", "Municipality", "Total Value", "Score", "Priority"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, r.Type, r.Reference(), r.Municipality, dashboard.FormatBRL(r.TotalValue), fmt.Sprintf("%.2f", r.Score), r.Priority})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", dashboard.FormatBRL(sumValues(records)), "", len(records)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

func renderSummary(out io.Writer, phases []*phase) bool {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Check", "Result"})
	allPassed := true
	for _, p := range phases {
		status := text.FgGreen.Sprint("PASS")
		if !p.passed() {
			status = text.FgRed.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		t.AppendRow(table.Row{p.name, status})
	}
	t.Render()
	return allPassed
}

func sumValues(records []domain.Opportunity) float64 {
	var total float64
	for _, r := range records {
		total += r.TotalValue
	}
	return total
}

// ── Validation phases ──

func validateIDs(records []domain.Opportunity) *phase {
	p := &phase{name: "Unique IDs"}
	seen := make(map[int]int, len(records))
	for i, r := range records {
		if prev, ok := seen[r.ID]; ok {
			p.errorf("id %d used by records %d and %d", r.ID, prev+1, i+1)
			continue
		}
		seen[r.ID] = i
	}
	return p
}

func validateScores(records []domain.Opportunity) *phase {
	p := &phase{name: "Score range [0, 1]"}
	for _, r := range records {
		if r.Score < 0 || r.Score > 1 {
			p.errorf("id %d: score %.2f out of range", r.ID, r.Score)
		}
	}
	return p
}

func validatePriorities(records []domain.Opportunity) *phase {
	p := &phase{name: "Known priority labels"}
	for _, r := range records {
		if !domain.IsKnownPriority(r.Priority) {
			p.errorf("id %d: unknown priority %q (marker falls back to %s)", r.ID, r.Priority, domain.MarkerColor(r.Priority))
		}
	}
	return p
}

func validateValues(records []domain.Opportunity) *phase {
	p := &phase{name: "Non-negative values"}
	for _, r := range records {
		fields := map[string]*float64{
			"construction_value": r.ConstructionValue,
			"investment_value":   r.InvestmentValue,
			"estimated_value":    r.EstimatedValue,
		}
		set := 0
		for _, name := range []string{"construction_value", "investment_value", "estimated_value"} {
			v := fields[name]
			if v == nil {
				continue
			}
			set++
			if *v < 0 {
				p.errorf("id %d: %s is negative (%.2f)", r.ID, name, *v)
			}
		}
		if set == 0 {
			p.errorf("id %d: no value field set; total value defaults to 0", r.ID)
		}
	}
	return p
}

func validateReferences(records []domain.Opportunity) *phase {
	p := &phase{name: "Reference numbers"}
	for _, r := range records {
		switch {
		case r.Type == domain.TypeConstructionPermit && r.PermitNumber == "":
			p.errorf("id %d: construction permit without permit number", r.ID)
		case r.Type != domain.TypeConstructionPermit && r.ProcessNumber == "":
			p.errorf("id %d: %s without process number", r.ID, r.Type)
		}
	}
	return p
}

func validateAddresses(records []domain.Opportunity) *phase {
	p := &phase{name: "Geocodable addresses"}
	for _, r := range records {
		if r.Address == "" {
			p.errorf("id %d: empty address; record will not appear on the map", r.ID)
		}
	}
	return p
}
