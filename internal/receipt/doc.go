// Package receipt sends and reads return receipts: small encrypted
// acknowledgements that a message or attachment was delivered or read.
//
// The codec seals a msgpack payload with XChaCha20-Poly1305 under a key the
// sender generated for that message; the receipt nonce is bound as associated
// data. The uploader owns one background upload channel whose in-flight tasks
// are kept in a durable registry, so a relaunched process reattaches them
// under the same channel id.
package receipt
