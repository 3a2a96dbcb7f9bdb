// Package shared provides common utilities used across the seedcli
// codebase. It currently holds testutil, the test helpers shared by the
// package-level test suites.
package shared
