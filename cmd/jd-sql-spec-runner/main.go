// Package main provides the jd-sql-spec-runner binary, a jd stand-in for the
// jd spec test harness that delegates diffing to a SQL implementation.
package main

import (
	"os"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
