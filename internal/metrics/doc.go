// Package metrics exposes Prometheus collectors describing analysis runs.
// A one-shot CLI has nothing to scrape it, so the registry can also be
// written out in the node_exporter textfile format.
package metrics
