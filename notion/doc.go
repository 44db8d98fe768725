// Package notion models the subset of the Notion content API consumed by the
// converters: blocks with their type-keyed payloads, rich text spans, file
// references and page metadata. Decoding is deliberately forgiving; real
// exports frequently omit optional keys, so every accessor falls back to the
// zero value instead of failing.
package notion
