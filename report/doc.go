// Package report renders extraction outcomes for humans.
//
// Three formats share one Summary input: a plain-text table for terminals,
// a PDF for archival, and an XLSX workbook for further analysis. Rendering
// never alters the underlying numbers; unresolved fields appear as such
// rather than as zeros.
package report
