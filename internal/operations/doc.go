// Package operations orchestrates conversion runs for the FR Y-9 converter.
//
// A run flows through three stages:
//
//  1. Archive normalization: ZIP inputs are extracted to flat text files
//  2. Discovery: delimited inputs are listed and their periods resolved
//     from filenames
//  3. Dispatch: one independent pipeline per file, fanned out across a
//     bounded worker pool
//
// The Dispatcher owns the pool. Tasks share no mutable state and write to
// disjoint partition paths, so results are simply collected over a channel
// after the pool drains. Worker count follows the configuration: N bounds
// the pool, zero forces strictly sequential execution, and a negative value
// selects the machine's available parallelism.
//
// Every outcome is aggregated into a RunReport: per-file results, skip
// counts keyed by error taxonomy, and per-record exclusion counts. Only
// setup failures (missing input directory, zero processable inputs) abort
// a run; anything that goes wrong later is recovered into the report.
package operations
