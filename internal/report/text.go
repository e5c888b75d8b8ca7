package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type textStyles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	valid   lipgloss.Style
	invalid lipgloss.Style
	levels  map[string]lipgloss.Style
	muted   lipgloss.Style
}

// newTextStyles binds the styles to w, so colours are only emitted when w is
// a terminal that supports them.
func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF")),
		header:  r.NewStyle().Bold(true).MarginTop(1),
		valid:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00")),
		invalid: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
		levels: map[string]lipgloss.Style{
			"error":   r.NewStyle().Foreground(lipgloss.Color("#FF0000")),
			"warning": r.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
			"message": r.NewStyle().Foreground(lipgloss.Color("#888888")),
		},
		muted: r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

func renderText(w io.Writer, r *Report) error {
	st := newTextStyles(w)
	var sb strings.Builder

	status := st.valid.Render("valid")
	if !r.Valid {
		status = st.invalid.Render("invalid")
	}
	sb.WriteString(st.title.Render("Model "+r.Model) + ": " + r.Type + " (" + status + ")\n")
	if r.VOI != "" {
		sb.WriteString("Variable of integration: " + r.VOI + "\n")
	}

	if len(r.Variables) > 0 {
		sb.WriteString(st.header.Render("Variables") + "\n")
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Variable", "Type", "Index", "Units", "Initial")
		for _, v := range r.Variables {
			t.Row(v.Name, v.Type, strconv.Itoa(v.Index), v.Units, initialText(v))
		}
		sb.WriteString(t.String() + "\n")
	}

	if len(r.Equations) > 0 {
		sb.WriteString(st.header.Render("Equations") + "\n")
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "Type", "Component", "Equation", "NLA")
		for _, e := range r.Equations {
			eq := e.Equation
			if eq == "" {
				eq = strings.Join(e.Computes, ", ") + " (external)"
			}
			nla := ""
			if e.NLASystem != nil {
				nla = strconv.Itoa(*e.NLASystem)
			}
			t.Row(strconv.Itoa(e.Order), e.Type, e.Component, eq, nla)
		}
		sb.WriteString(t.String() + "\n")
	}

	if len(r.NLASystems) > 0 {
		sb.WriteString(st.header.Render("Nonlinear systems") + "\n")
		for _, sys := range r.NLASystems {
			orders := make([]string, len(sys.Equations))
			for i, o := range sys.Equations {
				orders[i] = strconv.Itoa(o)
			}
			fmt.Fprintf(&sb, "  #%d: equations %s; unknowns %s\n",
				sys.Index, strings.Join(orders, ", "), strings.Join(sys.Unknowns, ", "))
		}
	}

	if len(r.HelperFunctions) > 0 {
		sb.WriteString(st.header.Render("Helper functions") + "\n")
		sb.WriteString("  " + strings.Join(r.HelperFunctions, ", ") + "\n")
	}

	if len(r.Issues) > 0 {
		sb.WriteString(st.header.Render("Issues") + "\n")
		for _, issue := range r.Issues {
			level := st.levels[issue.Level].Render(issue.Level)
			line := fmt.Sprintf("  %s [%s] %s", level, issue.Code, issue.Description)
			if issue.Item != "" {
				line += " " + st.muted.Render("("+issue.Item+")")
			}
			sb.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func initialText(v Variable) string {
	if v.Initial == nil {
		return ""
	}
	s := strconv.FormatFloat(*v.Initial, 'g', -1, 64)
	if v.InitialFrom != "" {
		s += " (from " + v.InitialFrom + ")"
	}
	return s
}
