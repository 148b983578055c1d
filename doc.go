// Package invtrack provides the data model and calculation engines for a
// personal investment tracker. It is designed to be local-first and
// auditable: the transaction log is the single source of truth, and every
// derived figure (holdings, valuations, performance) is recomputed from it
// on demand.
//
// The core functionalities include:
//   - Ledger Store: Recording accounts, shares, price observations and
//     transactions, with write-time validation and single-writer discipline.
//   - Valuation Engine: Computing the quantity held and its value in a
//     chosen currency for any account and date, with carry-forward price
//     lookup and pluggable FX conversion.
//   - Performance Engine: Deriving lazy time series of absolute values,
//     100-rebased values, and holding-period returns.
//   - Composition Engine: Partitioning an account's value across its
//     constituent shares at a date or over a range.
//   - Data Persistence: Encoding and decoding the ledger to and from a
//     human-readable, version-controllable JSONL format, plus CSV price
//     import and field export.
//
// This package serves as the foundational logic for the `ivt` command-line
// tool.
package invtrack
