// Package memory persists the conversation log.
//
// Persistence model:
//   - One Turn per JSONL line, so the on-disk log is always a valid prefix of
//     records even after an interrupted write.
//   - Every successful Append/Clear/Import commits the full log atomically
//     (temp file + rename); a crash leaves the previously persisted state.
//   - Loading salvages the longest well-formed prefix and warns about the
//     rest instead of failing the session.
package memory
