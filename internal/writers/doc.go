// Package writers turns evaluation results and structure records into
// serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV, JSON, JSONL, msgpack).
//   - Core stays domain-only; report stays orchestration-only.
//   - Every format goes through pkg/api (v1) for a stable wire schema.
package writers
