package cli

import (
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/validate"
)

// printReport prints the validation outcome, one line per violation.
func printReport(r *validate.Report) {
	if r == nil {
		return
	}
	if r.Passed() {
		printDetail("all hall invariants hold")
		return
	}
	printNewline()
	printWarning("%d rule violations", len(r.Violations))
	for _, v := range r.Violations {
		printDetail("%s: %s", v.Rule, v.Message)
	}
}

// violationCount returns the number of violations in a layout's report.
func violationCount(l *layout.Layout) int {
	if l == nil || l.Report == nil {
		return 0
	}
	return len(l.Report.Violations)
}
