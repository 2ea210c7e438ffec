// Package dataprocessing implements the parse/classify/project core of the
// FR Y-9 filing converter.
//
// # Architecture
//
// The package is organized into five stages, each independently testable:
//
//  1. Sniffer: detects the field delimiter (comma or caret) from the header
//  2. Period resolver: derives the reporting quarter from the filename
//  3. Parser: tokenizes a filing into a normalized header and aligned rows
//  4. Classifier: assigns each record to a filer type by prefix density
//  5. Projector: restricts records to their type's columns and coerces the
//     institution identifier
//
// ConvertFile ties the stages together for one filing.
//
// # Data Flow
//
// The typical flow through this package:
//
//	bhcf file → DetectFileDelimiter → ParseFiling → Classify → Project → ProjectedSets
//
// # Error Handling
//
// File-level failures (undetectable format, unreadable file, missing
// identifier column) return typed errors and skip the file. Per-record
// degenerate cases (unclassifiable rows, non-numeric identifiers, separator
// and malformed rows) are excluded and counted on the FileConversion; they
// never fail the file.
package dataprocessing
