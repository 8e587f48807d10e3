// Package pkgmetrics owns the Prometheus registry of the process.
//
// HTTP traffic is observed by the router middleware; dashboard code reports
// decoded files, combined rows and live sessions through the same type.
package pkgmetrics
