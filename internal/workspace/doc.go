// Package workspace manages the staging directory a build writes into.
//
// A build never writes to the live output root directly. It renders into a
// sibling staging directory (e.g. .public-staging-20251214-122336) and, on
// success, Commit swaps it into place with two renames. Readers of the output
// root see either the previous tree or the new one. A failed build calls
// Cleanup, which removes the staging directory and leaves the live tree alone.
package workspace
