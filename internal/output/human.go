package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/abatilo/tempo/internal/dates"
	"github.com/abatilo/tempo/internal/deps"
	"github.com/abatilo/tempo/internal/task"
	"github.com/abatilo/tempo/internal/view"
)

const indentWidth = 2

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	formatDate func(time.Time) string
}

// NewHumanFormatter creates a HumanFormatter. A nil formatDate prints ISO dates.
func NewHumanFormatter(formatDate func(time.Time) string) *HumanFormatter {
	if formatDate == nil {
		formatDate = dates.ISO
	}
	return &HumanFormatter{formatDate: formatDate}
}

// FormatRows formats the visible projection as an aligned table. Critical
// rows are flagged with '*'; groups show [+] when collapsed and [-] otherwise.
func (f *HumanFormatter) FormatRows(rows []view.Row, critical map[int]bool) string {
	if len(rows) == 0 {
		return "No tasks found.\n"
	}

	labels := make([]string, len(rows))
	width := len("NAME")
	for i, r := range rows {
		labels[i] = rowLabel(r)
		width = max(width, len(labels[i]))
	}

	var sb strings.Builder
	header := fmt.Sprintf("  %4s  %-*s  %-10s  %-10s  %4s  %4s  %4s  %s",
		"ID", width, "NAME", "START", "FINISH", "DUR", "BD", "PCT", "PRED")
	sb.WriteString(styleHeader.Render(header))
	sb.WriteString("\n")

	for i, r := range rows {
		mark := " "
		if critical[r.ID] {
			mark = "*"
		}
		line := fmt.Sprintf("%s %4d  %-*s  %-10s  %-10s  %4d  %4s  %3d%%  %s",
			mark, r.ID, width, labels[i],
			f.formatDate(r.Start), f.formatDate(finishOf(r.Task)),
			r.Dur, businessDays(r.Task), r.Pct, predecessorLabel(r.Task))
		line = strings.TrimRight(line, " ")

		switch {
		case critical[r.ID]:
			line = styleCritical.Render(line)
		case r.IsGroup:
			line = styleGroup.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func rowLabel(r view.Row) string {
	marker := ""
	switch {
	case r.Collapsed:
		marker = "[+] "
	case r.IsGroup:
		marker = "[-] "
	case r.Type == task.TypeMilestone:
		marker = "<> "
	}
	return strings.Repeat(" ", r.Indent*indentWidth) + marker + r.Name
}

func finishOf(t task.Task) time.Time {
	if t.Start.IsZero() {
		return time.Time{}
	}
	return dates.Finish(t.Start, t.Dur)
}

func businessDays(t task.Task) string {
	if t.Start.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d", dates.CountBusinessDays(t.Start, finishOf(t)))
}

// predecessorLabel renders dependency edges as "3FS" or "2FS,5SS ANY".
// The multi list wins over the single edge, matching the scheduler.
func predecessorLabel(t task.Task) string {
	if len(t.Dependencies) > 0 {
		parts := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			parts[i] = fmt.Sprintf("%d%s", d.PredecessorID, task.NormalizeDepType(d.DepType))
		}
		return strings.Join(parts, ",") + " " + string(t.EffectiveLogic())
	}
	if t.PredecessorID != 0 {
		return fmt.Sprintf("%d%s", t.PredecessorID, t.EffectiveDepType())
	}
	return ""
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%d] %s\n", t.ID, t.Name)
	fmt.Fprintf(&sb, "  Type:     %s\n", t.Type)
	fmt.Fprintf(&sb, "  Indent:   %d\n", t.Indent)
	if t.Start.IsZero() {
		fmt.Fprintf(&sb, "  Duration: %d days\n", t.Dur)
	} else {
		fmt.Fprintf(&sb, "  Start:    %s\n", f.formatDate(t.Start))
		fmt.Fprintf(&sb, "  Finish:   %s\n", f.formatDate(finishOf(t)))
		fmt.Fprintf(&sb, "  Duration: %d days (%s business)\n", t.Dur, businessDays(t))
	}
	fmt.Fprintf(&sb, "  Progress: %d%%\n", t.Pct)
	if pred := predecessorLabel(t); pred != "" {
		fmt.Fprintf(&sb, "  Depends:  %s\n", pred)
	}

	return sb.String()
}

// FormatCritical formats the CPM table in topological order.
func (f *HumanFormatter) FormatCritical(r *deps.Result, tasks []task.Task) string {
	if r == nil || len(r.Order) == 0 {
		return "No scheduled tasks.\n"
	}

	names := make(map[int]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}

	var sb strings.Builder
	header := fmt.Sprintf("  %4s  %6s  %6s  %6s  %6s  %6s  %s", "ID", "ES", "EF", "LS", "LF", "FLOAT", "NAME")
	sb.WriteString(styleHeader.Render(header))
	sb.WriteString("\n")

	for _, id := range r.Order {
		n := r.Nodes[id]
		mark := " "
		if r.Critical[id] {
			mark = "*"
		}
		line := fmt.Sprintf("%s %4d  %6.1f  %6.1f  %6.1f  %6.1f  %6.1f  %s",
			mark, id, n.ES, n.EF, n.LS, n.LF, n.Float, names[id])
		if r.Critical[id] {
			line = styleCritical.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	path := make([]string, len(r.CriticalPath))
	for i, id := range r.CriticalPath {
		path[i] = fmt.Sprintf("%d", id)
	}
	sb.WriteString("\n")
	summary := fmt.Sprintf("Project: %s, %.0f days. Critical path: %s",
		f.formatDate(r.ProjectStart), r.ProjectEnd, strings.Join(path, " -> "))
	sb.WriteString(styleSubtle.Render(summary))
	sb.WriteString("\n")
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
