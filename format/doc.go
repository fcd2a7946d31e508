// Package format defines the known record shapes stored in munge
// containers: scripts, textures, and hash-addressed packs.
//
// Each record type describes its chunk layout as a node schema, so the same
// definition drives decoding and encoding. Payload semantics beyond the
// chunk structure (script bytecode, texture pixel formats) are out of
// scope; bulk data is exposed as lazy byte payloads for the consumer to
// interpret.
package format
