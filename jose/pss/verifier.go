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
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/deep-rent/rsapss/jose/pss/jwk"
	"github.com/deep-rent/rsapss/jose/pss/pem"
)

// Verifier checks RSASSA-PSS signatures against one RSA public key, bound
// to one Algorithm.
type Verifier struct {
	alg Algorithm
	pub *rsa.PublicKey
	kid string
}

// VerifierFromKeyPair builds a Verifier from the public half of an
// existing KeyPair.
func VerifierFromKeyPair(k *KeyPair, kid string) *Verifier {
	return &Verifier{alg: k.alg, pub: &k.priv.PublicKey, kid: kid}
}

// VerifierFromDER parses a public key from DER, accepting either a raw
// PKCS#1 RSAPublicKey or a SubjectPublicKeyInfo wrapping one under the
// RSASSA-PSS AlgorithmIdentifier for alg. A SubjectPublicKeyInfo with any
// other AlgorithmIdentifier is rejected.
func VerifierFromDER(alg Algorithm, in []byte, kid string) (*Verifier, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unknown algorithm", ErrInvalidKeyFormat)
	}
	body, err := unwrapPKCS8(in, alg, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	pub, err := x509.ParsePKCS1PublicKey(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if pub.N.BitLen() < minKeyBits {
		return nil, fmt.Errorf("%w: key length %d is below the %d-bit minimum", ErrInvalidKeyFormat, pub.N.BitLen(), minKeyBits)
	}
	return &Verifier{alg: alg, pub: pub, kid: kid}, nil
}

// VerifierFromPEM parses a public key from its PEM envelope.
func VerifierFromPEM(alg Algorithm, in []byte, kid string) (*Verifier, error) {
	label, body, err := pem.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if err := checkPEMLabel(label, alg, true, body); err != nil {
		return nil, err
	}
	return VerifierFromDER(alg, body, kid)
}

// VerifierFromJWK builds a Verifier from a JWK Document. If the document
// carries a "kid", it is used unless overridden by a non-empty kid
// argument.
func VerifierFromJWK(alg Algorithm, doc *jwk.Document, kid string) (*Verifier, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unknown algorithm", ErrInvalidKeyFormat)
	}
	if _, err := jwk.ValidateHeader(doc, alg.KeyType(), alg.Name(), "verify"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	body, err := jwk.AssemblePublicKey(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	pub, err := x509.ParsePKCS1PublicKey(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if pub.N.BitLen() < minKeyBits {
		return nil, fmt.Errorf("%w: key length %d is below the %d-bit minimum", ErrInvalidKeyFormat, pub.N.BitLen(), minKeyBits)
	}
	if kid == "" {
		kid, _ = doc.KeyID()
	}
	return &Verifier{alg: alg, pub: pub, kid: kid}, nil
}

// Algorithm returns the RSASSA-PSS variant this verifier checks.
func (v *Verifier) Algorithm() Algorithm { return v.alg }

// KeyID returns the key ID associated with this verifier, if any.
func (v *Verifier) KeyID() (string, bool) { return v.kid, v.kid != "" }

// SetKeyID sets the key ID associated with this verifier.
func (v *Verifier) SetKeyID(kid string) { v.kid = kid }

// PublicKey returns the underlying RSA public key.
func (v *Verifier) PublicKey() *rsa.PublicKey { return v.pub }

// CriticalHeaders lists the JWS header parameters this verifier requires
// the caller's header-validation layer to recognize before trusting a
// signature under this algorithm. RSASSA-PSS as used here needs none
// beyond the standard "alg".
func (v *Verifier) CriticalHeaders() []string { return nil }

// ToDER encodes the public key as a PKCS#8 SubjectPublicKeyInfo DER
// SEQUENCE carrying the RSASSA-PSS AlgorithmIdentifier.
func (v *Verifier) ToDER() []byte {
	return ToPKCS8(x509.MarshalPKCS1PublicKey(v.pub), v.alg, true)
}

// ToPEM encodes the public key as a PEM envelope under the "PUBLIC KEY"
// label.
func (v *Verifier) ToPEM() []byte {
	return pem.Encode("PUBLIC KEY", v.ToDER())
}

// ToJWK exports the public key as a JWK Document with the given key ID
// (omitted if empty).
func (v *Verifier) ToJWK(kid string) (*jwk.Document, error) {
	return jwk.ExportPublicKey(x509.MarshalPKCS1PublicKey(v.pub), v.alg.KeyType(), v.alg.Name(), kid)
}

// Verify checks sig against msg's digest under v.Algorithm(). It returns
// ErrInvalidSignature if the signature does not match.
func (v *Verifier) Verify(msg, sig []byte) error {
	h := v.alg.Hash().New()
	h.Write(msg)
	digest := h.Sum(nil)

	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: v.alg.Hash()}
	if err := rsa.VerifyPSS(v.pub, v.alg.Hash(), digest, sig, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}
