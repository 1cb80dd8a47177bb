// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/craftd/internal/careermetrics"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDetails prints the dashboard breakdowns that the summary view leaves
// out. Nil data prints nothing.
func (p *Printer) PrintDetails(d *careermetrics.CareerDashboardData) {
	if d == nil {
		return
	}
	p.PrintJobChanges(d.FinancialMetrics.JobChangeImpact)
	p.PrintWorkExperiences(d.WorkExperiences)
	p.PrintFunnel(d.ApplicationFunnel)
	p.PrintSources(d.JobApplicationMetrics.SourceMetrics)
}

// PrintJobChanges outputs the salary impact of each move between companies.
func (p *Printer) PrintJobChanges(changes []careermetrics.JobChangeImpact) {
	if len(changes) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := changes[i]
		sb.WriteString(fmt.Sprintf("%s → %s\n", c.FromCompany, c.ToCompany))
		sb.WriteString(fmt.Sprintf("  %s → %s (%s)\n",
			careermetrics.FormatCurrency(c.FromSalary),
			careermetrics.FormatCurrency(c.ToSalary),
			careermetrics.FormatPercentage(c.PercentageIncrease, 1)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(changes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more changes", len(changes)-maxItemsToShow))
	}

	p.printBox("JOB CHANGES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWorkExperiences outputs each position with its tenure and pay.
func (p *Printer) PrintWorkExperiences(exps []careermetrics.WorkExperienceWithFinancials) {
	if len(exps) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Positions: %d\n\n", len(exps)))

	count := min(len(exps), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := exps[i]
		marker := "•"
		if e.IsCurrent() {
			marker = "★"
		}
		sb.WriteString(fmt.Sprintf("%s %s, %s\n", marker, e.Role, e.Company))
		sb.WriteString(fmt.Sprintf("  %.1f years, %s", e.TenureYears, careermetrics.FormatCurrency(e.CurrentSalary)))
		if e.SalaryGrowthPercentage != 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", careermetrics.FormatPercentage(e.SalaryGrowthPercentage, 1)))
		}
		sb.WriteString("\n")
	}
	if len(exps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(exps)-maxItemsToShow))
	}

	p.printBox("WORK EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFunnel outputs the application funnel with stage conversions.
func (p *Printer) PrintFunnel(stages []careermetrics.FunnelStage) {
	if len(stages) == 0 || stages[0].Count == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range stages {
		sb.WriteString(fmt.Sprintf("%-12s %4d  %6s", s.Stage, s.Count, careermetrics.FormatPercentage(s.PercentOfTotal, 0)))
		if i > 0 {
			sb.WriteString(fmt.Sprintf("  ↳ %s", careermetrics.FormatPercentage(s.ConversionFromPrevious, 0)))
		}
		sb.WriteString("\n")
	}

	p.printBox("APPLICATION FUNNEL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSources outputs the top application sources by volume.
func (p *Printer) PrintSources(sources []careermetrics.SourceMetrics) {
	if len(sources) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(sources), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := sources[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%d)\n", i+1, s.Source, s.Count))
		sb.WriteString(fmt.Sprintf("    Responses: %s  Offers: %s\n",
			careermetrics.FormatPercentage(s.ResponseRate, 0),
			careermetrics.FormatPercentage(s.OfferRate, 0)))
	}
	if len(sources) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more sources", len(sources)-maxItemsToShow))
	}

	p.printBox("TOP SOURCES", strings.TrimSuffix(sb.String(), "\n"))
}
