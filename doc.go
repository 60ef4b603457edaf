package dombind

// Package dombind bridges a parsed, read-only JSON DOM and Go's typed values:
//
// - Decode/DecodeInto reconstruct structs, maps, slices, optionals and
//   registered enum variants from a dom.Node, with checked narrowing.
// - Encode/EncodeTo walk an arbitrary value and emit JSON text directly into
//   a builder.Builder, single pass, no intermediate tree.
// - FromNode materializes a depth-bounded generic Value when no static type
//   is known ahead of time.
// - RegisterEnum/RegisterCodec substitute the per-type registration table
//   that compile-time derivation would otherwise provide.
//
// Design policy:
// - Keep only public APIs in the root package; put support code under internal/.
// - Collaborator surfaces live in dom/ (node view) and builder/ (output buffer).
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	node, err := dom.Parse(data)
//	cfg, err := dombind.Decode[Config](node)
//
//	text, err := dombind.Encode(cfg)
//	text, err = dombind.EncodeWithCapacity(cfg, 4096)
