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

package pss

import (
	"errors"
	"fmt"

	"github.com/deep-rent/rsapss/internal/der"
)

// DetectPKCS8 reports whether raw is already wrapped in a PKCS#8
// PrivateKeyInfo (isPublic false) or SubjectPublicKeyInfo (isPublic true)
// carrying an AlgorithmIdentifier that matches alg: the same RSASSA-PSS
// parameters, with the hash, the MGF1 inner hash, and the salt length all
// bound to alg's digest.
//
// DetectPKCS8 is total: any mismatch anywhere in the expected template —
// wrong tag, wrong OID, wrong integer value, truncation — yields false
// rather than an error. This lets callers cheaply decide whether an input
// needs wrapping before handing it to ToPKCS8, without a separate
// error-handling path for "not wrapped" versus "malformed". It does not
// consume the key body that would follow the AlgorithmIdentifier; its sole
// purpose is to answer whether the wrapping is already present.
func DetectPKCS8(raw []byte, alg Algorithm, isPublic bool) bool {
	r := der.NewReader(raw)
	return matchAlgorithmIdentifier(r, alg, isPublic)
}

// matchAlgorithmIdentifier walks the expected top-level SEQUENCE through
// the end of the AlgorithmIdentifier, leaving r positioned to read the key
// body (OCTET STRING or BIT STRING) that follows, if the walk succeeds.
func matchAlgorithmIdentifier(r *der.Reader, alg Algorithm, isPublic bool) bool {
	if !expect(r, der.Sequence) {
		return false
	}
	r.Enter()

	if !isPublic {
		if !expect(r, der.Integer) {
			return false
		}
		v, err := r.Uint()
		if err != nil || v != 0 {
			return false
		}
	}

	if !expect(r, der.Sequence) {
		return false
	}
	r.Enter()
	if !expectOID(r, oidRSASSAPSS) {
		return false
	}

	if !expect(r, der.Sequence) {
		return false
	}
	r.Enter()

	if !expectContext(r, 0) {
		return false
	}
	r.Enter()
	if !expect(r, der.Sequence) {
		return false
	}
	r.Enter()
	if !expectOID(r, alg.digestOID()) {
		return false
	}
	r.Leave() // [0]'s SEQUENCE
	r.Leave() // [0]

	if !expectContext(r, 1) {
		return false
	}
	r.Enter()
	if !expect(r, der.Sequence) {
		return false
	}
	r.Enter()
	if !expectOID(r, oidMGF1) {
		return false
	}
	if !expect(r, der.Sequence) {
		return false
	}
	r.Enter()
	if !expectOID(r, alg.digestOID()) {
		return false
	}
	r.Leave() // mgf1's inner hash SEQUENCE
	r.Leave() // [1]'s SEQUENCE
	r.Leave() // [1]

	if !expectContext(r, 2) {
		return false
	}
	r.Enter()
	if !expect(r, der.Integer) {
		return false
	}
	v, err := r.Uint()
	if err != nil || int(v) != alg.SaltLen() {
		return false
	}
	r.Leave() // [2]

	r.Leave() // RSASSA-PSS-params SEQUENCE
	r.Leave() // AlgorithmIdentifier SEQUENCE

	return true
}

func expect(r *der.Reader, want der.Type) bool {
	tag, ok, err := r.Next()
	return err == nil && ok && tag.Type == want
}

func expectContext(r *der.Reader, number int) bool {
	tag, ok, err := r.Next()
	return err == nil && ok && tag.Type == der.Other && tag.Class == der.ContextSpecific && tag.Number == number
}

func expectOID(r *der.Reader, want der.OID) bool {
	tag, ok, err := r.Next()
	if err != nil || !ok || tag.Type != der.ObjectIdentifier {
		return false
	}
	got, err := r.OID()
	return err == nil && got.Equal(want)
}

// ToPKCS8 wraps a raw PKCS#1 RSAPrivateKey (isPublic false) or
// RSAPublicKey (isPublic true) DER body in the PKCS#8 PrivateKeyInfo or
// SubjectPublicKeyInfo template for alg. It is total: the body is opaque to
// this function, which neither inspects nor validates it.
func ToPKCS8(raw []byte, alg Algorithm, isPublic bool) []byte {
	b := der.NewBuilder()
	b.Begin(der.Seq())
	if !isPublic {
		b.AppendUint8(0)
	}

	b.Begin(der.Seq())
	b.AppendOID(oidRSASSAPSS...)
	b.Begin(der.Seq())
	{
		b.Begin(der.Context(0))
		b.Begin(der.Seq())
		b.AppendOID(alg.digestOID()...)
		b.End()
		b.End()

		b.Begin(der.Context(1))
		b.Begin(der.Seq())
		b.AppendOID(oidMGF1...)
		b.Begin(der.Seq())
		b.AppendOID(alg.digestOID()...)
		b.End()
		b.End()
		b.End()

		b.Begin(der.Context(2))
		b.AppendUint8(uint8(alg.SaltLen()))
		b.End()
	}
	b.End()
	b.End()

	if isPublic {
		b.AppendBitString(raw, 0)
	} else {
		b.AppendOctetString(raw)
	}
	b.End()

	return b.Bytes()
}

// checkPEMLabel enforces §4.4's label discipline: a PEM envelope's label
// dictates what raw must look like before it is handed to the DER path.
// "PRIVATE KEY"/"RSA-PSS PRIVATE KEY" and "PUBLIC KEY"/"RSA-PSS PUBLIC KEY"
// require a PKCS#8 wrapper whose AlgorithmIdentifier matches alg; "RSA
// PRIVATE KEY"/"RSA PUBLIC KEY" carry a bare PKCS#1 body and are passed
// through unchecked. Any other label is rejected outright.
func checkPEMLabel(label string, alg Algorithm, isPublic bool, raw []byte) error {
	if isPublic {
		switch label {
		case "PUBLIC KEY", "RSA-PSS PUBLIC KEY":
			if !DetectPKCS8(raw, alg, true) {
				return fmt.Errorf("%w: %q label requires a PKCS#8 SubjectPublicKeyInfo matching %s", ErrInvalidKeyFormat, label, alg)
			}
			return nil
		case "RSA PUBLIC KEY":
			return nil
		default:
			return fmt.Errorf("%w: unrecognized PEM label %q", ErrInvalidKeyFormat, label)
		}
	}
	switch label {
	case "PRIVATE KEY", "RSA-PSS PRIVATE KEY":
		if !DetectPKCS8(raw, alg, false) {
			return fmt.Errorf("%w: %q label requires a PKCS#8 PrivateKeyInfo matching %s", ErrInvalidKeyFormat, label, alg)
		}
		return nil
	case "RSA PRIVATE KEY":
		return nil
	default:
		return fmt.Errorf("%w: unrecognized PEM label %q", ErrInvalidKeyFormat, label)
	}
}

// unwrapPKCS8 returns the raw PKCS#1 key body carried in raw: if raw is
// wrapped in a PKCS#8 PrivateKeyInfo / SubjectPublicKeyInfo matching alg's
// AlgorithmIdentifier, its body is stripped and returned; otherwise raw is
// assumed to already be a bare PKCS#1 body and is returned unchanged. The
// result is always suitable for x509.ParsePKCS1PrivateKey /
// x509.ParsePKCS1PublicKey: Go's crypto/x509 does not recognize the
// rsassa-pss AlgorithmIdentifier, so this package — not x509 — is
// responsible for stripping it.
func unwrapPKCS8(raw []byte, alg Algorithm, isPublic bool) ([]byte, error) {
	r := der.NewReader(raw)
	if matchAlgorithmIdentifier(r, alg, isPublic) {
		return splitBody(r, isPublic)
	}
	return raw, nil
}

// splitBody reads the key body (OCTET STRING or BIT STRING) that follows
// an AlgorithmIdentifier already matched by matchAlgorithmIdentifier.
func splitBody(r *der.Reader, isPublic bool) ([]byte, error) {
	if isPublic {
		if !expect(r, der.BitString) {
			return nil, errors.New("der: expected BIT STRING key body")
		}
		b := r.Bytes()
		if len(b) == 0 || b[0] != 0 {
			return nil, errors.New("der: unexpected unused bits in BIT STRING")
		}
		return b[1:], nil
	}
	if !expect(r, der.OctetString) {
		return nil, errors.New("der: expected OCTET STRING key body")
	}
	return r.Bytes(), nil
}
