// Package report turns an analysis result into a serialisable summary and
// renders it as styled text, JSON or YAML.
package report
