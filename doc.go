// Package rlnc implements the core of a Random Linear Network Coding (RLNC)
// codec: a pluggable finite-field arithmetic layer, an online
// Gaussian-elimination decoder, and an encoder that turns a fixed-size
// payload into an unbounded stream of coded packets.
//
// # Overview
//
// RLNC splits a payload into a fixed number of chunks and produces coded
// packets, each a random linear combination (over a finite field) of every
// chunk. A receiver that collects any set of coded packets whose coding
// vectors are linearly independent — one per chunk — can reconstruct the
// original payload exactly, regardless of which specific packets arrived or
// in what order. This makes the codec well suited to lossy, multipath, or
// multicast transports where packet identity isn't preserved.
//
// # Basic Usage
//
//	enc, err := rlnc.NewEncoder(rlnc.GF256{}, []byte("Hello, world!"), 3)
//	if err != nil {
//		// handle error
//	}
//
//	dec, err := rlnc.NewDecoder(enc.ChunkSize(), enc.ChunkCount())
//	if err != nil {
//		// handle error
//	}
//
//	for !dec.CanDecode() {
//		packet, err := enc.Encode(rand.Reader)
//		if err != nil {
//			// handle error
//		}
//		data, ok, err := dec.Decode(packet)
//		if err != nil {
//			// handle error
//		}
//		if ok {
//			// data holds the reconstructed payload
//			_ = data
//		}
//	}
//
// # Field Backends
//
// Two backends are provided: [GF256], a byte-sized field using precomputed
// log/exp tables (one payload byte per field element), and [PrimeField], a
// ~253-bit scalar field backed by the Ed25519 scalar group (31 payload bytes
// per field element) for applications that later want to commit to chunks
// with a Pedersen commitment scheme. The core has no opinion on which
// backend a caller picks; both satisfy [Field].
//
// # What This Package Does Not Do
//
// It does not fragment a payload across multiple generations, schedule
// retransmissions, authenticate packets, track packet provenance, or frame
// packets for a transport. Those are callers' responsibilities; see
// cmd/rlncsim and cmd/slidingwindow for worked examples of a caller
// layering gossip broadcast and windowed generations on top of this
// package.
package rlnc
