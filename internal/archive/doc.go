// Package archive normalizes ZIP-packaged filing archives into the flat
// canonical form the conversion pipeline reads.
//
// Each bhcf*.zip in the input directory is resolved to its reporting period
// from the archive filename, and its single filing member is extracted next
// to the archive under the canonical legacy name (bhcf{YY}{0Q}.csv). An
// extraction whose target already exists is skipped, so repeated runs never
// redo work. A bad archive skips that archive only.
package archive
