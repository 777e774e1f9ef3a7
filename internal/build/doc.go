// Package build provides the canonical build execution pipeline for sitebuilder.
//
// A pass loads the template set, copies the template root's static/ directory,
// then walks the content tree depth-first. Markup files become pages, reserved
// per-directory config files are skipped and everything else is copied
// verbatim. After a directory's children are processed its pages are sorted
// newest first and, when the directory carries an index.toml, rendered into
// that directory's index.html.
//
// Everything is written to a staging directory that replaces the output root
// only when the whole pass succeeds.
package build
