// Copyright (c) 2025-present deep.rent GmbH (https://deep.rent)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pss implements RSASSA-PSS signing and verification for JWS: the
// PS256, PS384, and PS512 algorithms, and the key-material interchange
// layer that converts between raw PKCS#1 DER, PKCS#8/SubjectPublicKeyInfo
// DER carrying the RSASSA-PSS AlgorithmIdentifier, PEM envelopes, and JSON
// Web Keys.
//
// The PSS cryptographic primitive itself is delegated to crypto/rsa
// (rsa.SignPSS/rsa.VerifyPSS): this package owns encoding, decoding,
// structural validation, and algorithm binding, not the signature math.
package pss

import (
	"crypto"
	_ "crypto/sha256" // register crypto.SHA256/384/512
	_ "crypto/sha512"

	"github.com/deep-rent/rsapss/internal/der"
)

// Algorithm identifies one of the three RSASSA-PSS variants supported for
// JWS. The zero value is not a valid Algorithm.
type Algorithm uint8

const (
	PS256 Algorithm = iota + 1
	PS384
	PS512
)

// String returns the JWA name of the algorithm, e.g. "PS256".
func (a Algorithm) String() string {
	switch a {
	case PS256:
		return "PS256"
	case PS384:
		return "PS384"
	case PS512:
		return "PS512"
	default:
		return "unknown"
	}
}

// Name is an alias for String, matching the "name" attribute of the data
// model this package implements.
func (a Algorithm) Name() string { return a.String() }

// KeyType returns the JWK key type shared by every RSASSA-PSS variant.
func (a Algorithm) KeyType() string { return "RSA" }

// Hash returns the message digest primitive used both for hashing the
// message and, per RFC 8017, as the inner hash of MGF1.
func (a Algorithm) Hash() crypto.Hash {
	switch a {
	case PS256:
		return crypto.SHA256
	case PS384:
		return crypto.SHA384
	case PS512:
		return crypto.SHA512
	default:
		return 0
	}
}

// SaltLen returns the PSS salt length in bytes, equal to the digest's
// output size.
func (a Algorithm) SaltLen() int {
	switch a {
	case PS256:
		return 32
	case PS384:
		return 48
	case PS512:
		return 64
	default:
		return 0
	}
}

// SignatureLen reports a conservative upper bound for the size of a
// signature produced by this algorithm: 342 bytes, the conventional bound
// for 2048-bit RSA moduli. It is independent of the variant. Callers using
// keys larger than 2048 bits must not rely on this value; prefer sizing
// buffers from the actual modulus size in bytes (KeyPair.PrivateKey().Size(),
// or Verifier.PublicKey().Size()) when the key size is known.
func (a Algorithm) SignatureLen() int { return 342 }

// digestOID returns the object identifier for the algorithm's hash
// function, used both as the [0] hashAlgorithm and, nested, as the [1]
// maskGenAlgorithm's inner hash of RSASSA-PSS-params.
func (a Algorithm) digestOID() der.OID {
	switch a {
	case PS256:
		return oidSHA256
	case PS384:
		return oidSHA384
	case PS512:
		return oidSHA512
	default:
		return nil
	}
}

func (a Algorithm) valid() bool {
	switch a {
	case PS256, PS384, PS512:
		return true
	default:
		return false
	}
}
