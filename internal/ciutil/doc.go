// Package ciutil detects CI environments and reads environment variables
// that have more than one accepted name. Test helpers use it to decide
// whether a missing database is a skip or a failure.
package ciutil
