// Package alto implements parsing of ALTO XML, the page-layout format
// produced by OCR and transcription platforms such as eScriptorium.
//
// This package provides:
//
// - A complete object model representing the ALTO layout hierarchy
// - Functions for parsing ALTO XML into structured Go types
// - Utilities for extracting text content and tag type references
//
// The package implements the hierarchical structure defined by the ALTO
// schema: Document → Pages → TextBlocks → TextLines → Strings, with layout
// geometry at each level and a document-wide tag table mapping tag IDs to
// semantic type labels.
//
// Key Types:
//
// - Document: Top-level structure for one ALTO file
// - Page: A single physical page with dimensions
// - TextBlock: A content region (zone) on the page
// - TextLine: A recognized line of text
// - String: A recognized word or text run with coordinates
// - Geometry: Pixel-space position of a layout element
//
// Main Functions:
//
// - Parse: Parses ALTO XML data into the object model
// - IsALTO: Reports whether XML data is an ALTO document
package alto
