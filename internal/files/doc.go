// Package files provides input discovery for the FR Y-9 converter.
//
// Discovery scans the raw input directory for the two kinds of inputs the
// pipeline consumes: delimited filing text files (bhcf*.csv) and the ZIP
// archives the recent-era files arrive in (bhcf*.zip). Matching is
// case-insensitive and results are sorted by name so a run always sees its
// inputs in the same order.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//
//	csvs, err := discovery.FindFilingFiles("data/raw")
//	zips, err := discovery.FindArchiveFiles("data/raw")
package files
