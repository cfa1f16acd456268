// Package errors provides centralized error code definitions for the
// sbgnqual compiler. All error codes are grouped by pipeline stage and
// carry enough context to let a caller decide whether to abort, warn,
// or retry.
package errors

import "fmt"

// ErrorCode represents a typed error code used throughout the compiler.
// Codes are partitioned by area to avoid conflicts and simplify
// maintenance as the pipeline grows.
type ErrorCode int

// ─────────────────────────────────────────────────────────────────────────────
// General / cross-cutting error codes (1xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	CodeOK           ErrorCode = 0
	CodeUnknown      ErrorCode = 10000
	CodeInvalidParam ErrorCode = 10001
	CodeInternal     ErrorCode = 10002
)

// ─────────────────────────────────────────────────────────────────────────────
// Reader error codes (6xxxx) — spec.md §7 "MalformedInput"
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeMalformedInput is returned when the reader cannot parse the
	// source CellDesigner/SBGN-ML document. The file is rejected and the
	// error surfaced to the caller.
	CodeMalformedInput ErrorCode = 60001
)

// ─────────────────────────────────────────────────────────────────────────────
// Model / invariant error codes (2xxxx) — spec.md §7 "DanglingReference"
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeDanglingReference indicates a reaction references a species id
	// that does not resolve after reduction. Always a core bug: the
	// pipeline aborts rather than continuing with an inconsistent graph.
	CodeDanglingReference ErrorCode = 20001

	// CodeMergedReference indicates a transfer or lookup was attempted
	// against a species that has itself already been merged away; the
	// caller must chase forwardings with Model.Resolve first.
	CodeMergedReference ErrorCode = 20002

	// CodeDisjointViolation indicates a reaction's reactants, products,
	// and modifiers are not pairwise disjoint (I2).
	CodeDisjointViolation ErrorCode = 20003

	// CodeEmptyModel indicates no species survived the full pipeline.
	// Non-fatal: reported as a warning, the writer emits an empty but
	// valid output.
	CodeEmptyModel ErrorCode = 20004
)

// ─────────────────────────────────────────────────────────────────────────────
// Reducer error codes (3xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeReducerInvariant indicates a rewrite rule produced a model
	// violating I1/I2 before the next stage could observe it; always a
	// core bug.
	CodeReducerInvariant ErrorCode = 30001
)

// ─────────────────────────────────────────────────────────────────────────────
// Namer error codes (4xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeNamerCollisionExhausted indicates the Namer could not produce a
	// unique export id even after every disambiguation step; this should
	// be unreachable since numeric suffixes are an infinite fallback.
	CodeNamerCollisionExhausted ErrorCode = 40001
)

// ─────────────────────────────────────────────────────────────────────────────
// Overrides error codes (5xxxx) — spec.md §7 "OverrideUnresolved"
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeOverrideUnresolved indicates a row in the fixed-values table
	// named a species absent from the model after pruning. Non-fatal:
	// reported as a warning, the row is skipped.
	CodeOverrideUnresolved ErrorCode = 50001
)

// ─────────────────────────────────────────────────────────────────────────────
// Infrastructure error codes (7xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	CodeDBConnectionError ErrorCode = 70001
	CodeWriterIO          ErrorCode = 70002
	CodeObjectStoreIO     ErrorCode = 70003
	CodeCacheError        ErrorCode = 70004
	CodeGraphStoreError   ErrorCode = 70005
	CodeIndexError        ErrorCode = 70006
	CodeMessagingError    ErrorCode = 70007
)

var codeNames = map[ErrorCode]string{
	CodeOK:                      "OK",
	CodeUnknown:                 "UNKNOWN",
	CodeInvalidParam:            "INVALID_PARAM",
	CodeInternal:                "INTERNAL",
	CodeMalformedInput:          "MALFORMED_INPUT",
	CodeDanglingReference:       "DANGLING_REFERENCE",
	CodeMergedReference:         "MERGED_REFERENCE",
	CodeDisjointViolation:       "DISJOINT_VIOLATION",
	CodeEmptyModel:              "EMPTY_MODEL",
	CodeReducerInvariant:        "REDUCER_INVARIANT",
	CodeNamerCollisionExhausted: "NAMER_COLLISION_EXHAUSTED",
	CodeOverrideUnresolved:      "OVERRIDE_UNRESOLVED",
	CodeDBConnectionError:       "DB_CONNECTION_ERROR",
	CodeWriterIO:                "WRITER_IO",
	CodeObjectStoreIO:           "OBJECT_STORE_IO",
	CodeCacheError:              "CACHE_ERROR",
	CodeGraphStoreError:         "GRAPH_STORE_ERROR",
	CodeIndexError:              "INDEX_ERROR",
	CodeMessagingError:          "MESSAGING_ERROR",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// CoreError is a typed, coded error raised by the compilation pipeline.
// Fatal kinds (DanglingReference, MalformedInput) should propagate to the
// caller unmodified; warning kinds (OverrideUnresolved, EmptyModel) are
// accumulated instead of returned — see application/compile.Service.
type CoreError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *CoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CoreError) Unwrap() error { return e.Err }

// New constructs a CoreError with no wrapped cause.
func New(code ErrorCode, message string) *CoreError {
	return &CoreError{Code: code, Message: message}
}

// Wrap constructs a CoreError wrapping an underlying error.
func Wrap(code ErrorCode, message string, err error) *CoreError {
	return &CoreError{Code: code, Message: message, Err: err}
}
