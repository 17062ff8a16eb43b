// Command tablemerge joins two tabular files on a shared column.
//
// Usage:
//
//	tablemerge merge customers.csv orders.xlsx --key customer_id
//	tablemerge columns customers.csv orders.xlsx
//	tablemerge inspect orders.xlsx
//
// Merged rows are written to merged_data.csv and primary rows without a
// match to unmatched_rows.xlsx.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version information populated at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
