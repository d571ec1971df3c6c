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

package jwk

import (
	"errors"
	"fmt"

	"github.com/deep-rent/rsapss/internal/der"
)

// ErrInvalidDocument is wrapped by every validation and assembly failure in
// this package: a header mismatch, a missing or mistyped RSA parameter, or
// a malformed PKCS#1 body during extraction.
var ErrInvalidDocument = errors.New("jwk: invalid document")

// ValidateHeader checks d's "kty", "alg", "use", and "key_ops" fields
// against the expected key type, algorithm name, and operation ("sign" or
// "verify"), and returns the key ID if present.
//
// "use" and "key_ops" are validated only when present: RFC 7517 marks both
// optional, and a JWK minted without them must not be rejected on that
// account alone. When "use" is present it must be "sig". When "key_ops" is
// present it must contain op.
func ValidateHeader(d *Document, kty, algName, op string) (kid string, err error) {
	if d.KeyType() != kty {
		return "", fmt.Errorf("%w: kty %q, want %q", ErrInvalidDocument, d.KeyType(), kty)
	}
	if alg, ok := d.Algorithm(); ok && alg != algName {
		return "", fmt.Errorf("%w: alg %q, want %q", ErrInvalidDocument, alg, algName)
	}
	if use, ok := d.KeyUse(); ok && use != "sig" {
		return "", fmt.Errorf("%w: use %q, want %q", ErrInvalidDocument, use, "sig")
	}
	if ops, ok := d.KeyOperations(); ok {
		found := false
		for _, o := range ops {
			if o == op {
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("%w: key_ops %v does not include %q", ErrInvalidDocument, ops, op)
		}
	}
	kid, _ = d.KeyID()
	return kid, nil
}

// required RSA private key parameters, in PKCS#1 RSAPrivateKey field order.
var privateParams = []string{"n", "e", "d", "p", "q", "dp", "dq", "qi"}

// AssemblePrivateKey reads d's "n", "e", "d", "p", "q", "dp", "dq", and
// "qi" parameters and assembles them into a PKCS#1 RSAPrivateKey DER
// SEQUENCE. All eight parameters are required and must be base64url
// (URL_SAFE_NO_PAD) encoded JSON strings.
func AssemblePrivateKey(d *Document) ([]byte, error) {
	values := make([][]byte, len(privateParams))
	for i, name := range privateParams {
		raw, err := d.ParameterBytes(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		values[i] = raw
	}

	b := der.NewBuilder()
	b.Begin(der.Seq())
	b.AppendUint8(0) // version
	for _, v := range values {
		b.AppendBigInt(v, true)
	}
	b.End()
	return b.Bytes(), nil
}

// AssemblePublicKey reads d's "n" and "e" parameters and assembles them
// into a PKCS#1 RSAPublicKey DER SEQUENCE.
func AssemblePublicKey(d *Document) ([]byte, error) {
	n, err := d.ParameterBytes("n")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	e, err := d.ParameterBytes("e")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	b := der.NewBuilder()
	b.Begin(der.Seq())
	b.AppendBigInt(n, true)
	b.AppendBigInt(e, true)
	b.End()
	return b.Bytes(), nil
}

// ExportPrivateKey builds a Document of the given key type and algorithm
// name from a PKCS#1 RSAPrivateKey DER SEQUENCE.
func ExportPrivateKey(raw []byte, kty, algName, kid string) (*Document, error) {
	r := der.NewReader(raw)
	if !expect(r, der.Sequence) {
		return nil, fmt.Errorf("%w: expected RSAPrivateKey SEQUENCE", ErrInvalidDocument)
	}
	r.Enter()
	if !expect(r, der.Integer) {
		return nil, fmt.Errorf("%w: expected version INTEGER", ErrInvalidDocument)
	}
	if _, err := r.Uint(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	d := New(kty)
	d.SetKeyUse("sig")
	d.SetKeyOperations([]string{"sign"})
	if algName != "" {
		d.SetAlgorithm(algName)
	}
	if kid != "" {
		d.SetKeyID(kid)
	}
	for _, name := range privateParams {
		if !expect(r, der.Integer) {
			return nil, fmt.Errorf("%w: expected INTEGER %q", ErrInvalidDocument, name)
		}
		v := r.Bytes()
		d.SetParameterBytes(name, trimLeadingZero(v))
	}
	return d, nil
}

// ExportPublicKey builds a Document of the given key type and algorithm
// name from a PKCS#1 RSAPublicKey DER SEQUENCE.
func ExportPublicKey(raw []byte, kty, algName, kid string) (*Document, error) {
	r := der.NewReader(raw)
	if !expect(r, der.Sequence) {
		return nil, fmt.Errorf("%w: expected RSAPublicKey SEQUENCE", ErrInvalidDocument)
	}
	r.Enter()

	d := New(kty)
	d.SetKeyUse("sig")
	d.SetKeyOperations([]string{"verify"})
	if algName != "" {
		d.SetAlgorithm(algName)
	}
	if kid != "" {
		d.SetKeyID(kid)
	}
	for _, name := range []string{"n", "e"} {
		if !expect(r, der.Integer) {
			return nil, fmt.Errorf("%w: expected INTEGER %q", ErrInvalidDocument, name)
		}
		v := r.Bytes()
		d.SetParameterBytes(name, trimLeadingZero(v))
	}
	return d, nil
}

func expect(r *der.Reader, want der.Type) bool {
	tag, ok, err := r.Next()
	return err == nil && ok && tag.Type == want
}

// trimLeadingZero strips the single leading zero byte DER prepends to a
// positive INTEGER whose high bit is set, so the exported JWK parameter
// carries only the unsigned magnitude.
func trimLeadingZero(v []byte) []byte {
	if len(v) > 1 && v[0] == 0 && v[1]&0x80 != 0 {
		return v[1:]
	}
	return v
}
