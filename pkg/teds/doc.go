// Package teds models IEEE 1451.0 Transducer Electronic Data Sheets as
// typed, self-describing TLV records.
//
// A Block is an ordered set of Fields. Each Field carries a type tag, a
// declared FieldType, a fixed or variable length, an optional enumerated
// domain and an optional/included pair controlling whether it is encoded.
// A Field of KindBlock holds a nested Block whose records become the
// field's value on the wire.
//
// # Encoding
//
// EncodeAll concatenates the records of every included field in
// declaration order. EncodeFramed adds the storage frame:
//
//	[u32 len(payload)+2][payload][u16 checksum]
//
// where checksum = 0xFFFF - (sum(payload) mod 0xFFFF).
//
// # Decoding
//
// Decode matches records to fields by type tag, not by position, and
// recurses into nested blocks. The DecodePolicy decides whether an
// unmatched tag aborts the decode or is skipped and reported.
//
// Neither Blocks nor Fields are safe for concurrent use, and the package
// performs no I/O.
package teds
