// Package protocol implements the binary wire format between a Luma session
// server and its client.
//
// Every message is a frame: a 4-byte header (type, flags, big-endian payload
// length) followed by the payload. Payloads use varint-based encoding via
// Encoder and Decoder.
//
// The server sends Patches frames carrying live-tree mutations (pkg/dom
// Mutation values) and the client sends Event frames carrying {target live
// ID, event name, value} triples.
package protocol
