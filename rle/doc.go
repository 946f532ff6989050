// Package rle implements a lossless run-length codec using an escape marker
// byte, aimed at data with long runs of identical bytes such as raw bitmap
// images or mostly-empty disk sectors.
//
// A run of a byte B with length N is written as a three-byte escape triple:
// the marker byte, then B, then N. Runs shorter than four bytes are cheaper
// to write out literally, so they are passed through unchanged; a run of
// exactly three bytes costs the same either way and is also written literally.
// For example, with the default marker 0xFE:
//
//	W XXXXXXXXXXXXXXX Y ZZ
//	W FE X 15 Y ZZ
//
// The count field is a single byte, so one triple covers at most 255 bytes.
// Longer runs are split into as many triples as needed: a run of 1000 "X"
// becomes FE X 255, FE X 255, FE X 255, FE X 235.
//
// Because the marker byte can appear in ordinary data, every literal
// occurrence of it is escaped as a triple as well, whatever the run length --
// a single 0xFE becomes FE FE 01. Without this rule the decoder could not
// tell literal data from a triple header. This is also the worst case for
// the format: input consisting entirely of isolated marker bytes triples in
// size. Data compressed here is typically fed through a general-purpose
// compressor afterwards, which flattens that expansion back out.
//
// The compressed stream is self-describing; there is no length prefix, magic
// number, or trailing terminator. Callers must track which buffers hold
// compressed data. The [github.com/adacomp/aapc/container] package adds block
// framing on top for whole-file use.
package rle
