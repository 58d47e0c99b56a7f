package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/internal/database"
	"github.com/estruyf/FrameFit/internal/models"
)

// DefaultErrorLimit caps error listings when no limit is given
const DefaultErrorLimit = 20

// Reporter builds resize history reports from the journal
type Reporter struct {
	repo *database.Repository
	now  func() time.Time
}

// New creates a new reporter
func New(repo *database.Repository) *Reporter {
	return &Reporter{
		repo: repo,
		now:  time.Now,
	}
}

// GenerateReport generates a report for the specified period
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	period, err := Period(periodType, r.now())
	if err != nil {
		return nil, err
	}

	summaries, err := r.repo.GetAppSummarySince(period.Start)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get app summary")
	}

	var total, failures int
	for _, s := range summaries {
		total += s.ResizeCount
		failures += s.FailureCount
	}

	if total > 0 {
		for i := range summaries {
			summaries[i].Percentage = float64(summaries[i].ResizeCount) / float64(total) * 100.0
		}
	}

	return &models.Report{
		Period:        *period,
		Apps:          summaries,
		TotalResizes:  total,
		TotalFailures: failures,
		GeneratedAt:   r.now(),
	}, nil
}

// Events returns the individual resize events recorded in the period,
// oldest first
func (r *Reporter) Events(periodType string) ([]*models.ResizeEvent, error) {
	period, err := Period(periodType, r.now())
	if err != nil {
		return nil, err
	}

	events, err := r.repo.GetEventsSince(period.Start)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get resize events")
	}
	return events, nil
}

// RecentErrors returns up to limit failed operations, newest first
func (r *Reporter) RecentErrors(limit int) ([]*models.ErrorLog, error) {
	if limit <= 0 {
		limit = DefaultErrorLimit
	}
	logs, err := r.repo.GetRecentErrors(limit)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get recent errors")
	}
	return logs, nil
}

// Period calculates the calendar range for "day" (or "today"), "week"
// (starting Monday) and "month" containing now
func Period(periodType string, now time.Time) (*models.ReportPeriod, error) {
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 1)

	case "week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Resize History - %s\n", report.Period.Type)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Total Resizes: %d (%d failed)\n\n", report.TotalResizes, report.TotalFailures)

	if len(report.Apps) == 0 {
		b.WriteString("No resizes recorded for this period.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-30s %10s %10s %10s\n", "Application", "Resizes", "Failed", "Percent")
	b.WriteString(strings.Repeat("-", 63) + "\n")

	for _, app := range report.Apps {
		fmt.Fprintf(&b, "%-30s %10d %10d %9.1f%%\n",
			Truncate(app.AppName, 30),
			app.ResizeCount,
			app.FailureCount,
			app.Percentage)
	}

	return b.String()
}

// FormatEventsText lists resize events one per line
func (r *Reporter) FormatEventsText(events []*models.ResizeEvent) string {
	if len(events) == 0 {
		return "No resizes recorded for this period.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %-10s %-24s %10s %-8s %s\n", "Time", "Window", "Application", "Size", "Centered", "Result")
	for _, e := range events {
		result := "ok"
		if !e.Success {
			result = "failed: " + e.ErrorMsg
		}
		fmt.Fprintf(&b, "%-16s %-10d %-24s %10s %-8v %s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.WindowID,
			Truncate(e.AppName, 24),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			e.Centered,
			result)
	}
	return b.String()
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return string(data), nil
}

// Truncate shortens s to maxLen runes, marking the cut with "..."
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
