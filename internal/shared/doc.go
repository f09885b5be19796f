// Package shared holds utilities that do not belong to a specific
// pipeline stage. Currently this is limited to testutil, the log
// capture helpers used by package tests to assert on structured
// log output.
package shared
