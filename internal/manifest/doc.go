// Package manifest reads and rewrites the generated project's package.json
// and validates the JSON documents the generator writes against embedded
// JSON Schemas. Rewrites keep the key order of the original document.
package manifest
