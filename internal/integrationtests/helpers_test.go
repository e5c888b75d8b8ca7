package integrationtests

import (
	"github.com/vk/cellan/internal/app"
	"github.com/vk/cellan/internal/report"
)

func withExternals(refs ...string) func(*app.Config) {
	return func(c *app.Config) {
		c.Externals = append(c.Externals, refs...)
	}
}

func withStrictUnits(c *app.Config) {
	c.UnitsStrictness = "error"
}

func issueCodes(r *report.Report) []string {
	var out []string
	for _, issue := range r.Issues {
		out = append(out, issue.Code)
	}
	return out
}

func variable(r *report.Report, name string) (report.Variable, bool) {
	for _, v := range r.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return report.Variable{}, false
}
