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
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/deep-rent/rsapss/jose/pss/jwk"
	"github.com/deep-rent/rsapss/jose/pss/pem"
)

// Signer produces RSASSA-PSS signatures with one RSA private key, bound to
// one Algorithm.
type Signer struct {
	alg  Algorithm
	priv *rsa.PrivateKey
	kid  string
}

// SignerFromKeyPair builds a Signer from an existing KeyPair.
func SignerFromKeyPair(k *KeyPair, kid string) *Signer {
	return &Signer{alg: k.alg, priv: k.priv, kid: kid}
}

// SignerFromDER parses a private key from DER and builds a Signer bound to
// alg, as KeyPairFromDER does.
func SignerFromDER(alg Algorithm, in []byte, kid string) (*Signer, error) {
	k, err := KeyPairFromDER(alg, in)
	if err != nil {
		return nil, err
	}
	return SignerFromKeyPair(k, kid), nil
}

// SignerFromPEM parses a private key from its PEM envelope and builds a
// Signer bound to alg.
func SignerFromPEM(alg Algorithm, in []byte, kid string) (*Signer, error) {
	label, body, err := pem.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if err := checkPEMLabel(label, alg, false, body); err != nil {
		return nil, err
	}
	return SignerFromDER(alg, body, kid)
}

// SignerFromJWK builds a Signer from a JWK Document. If the document
// carries a "kid", it is used unless overridden by a non-empty kid
// argument.
func SignerFromJWK(alg Algorithm, doc *jwk.Document, kid string) (*Signer, error) {
	k, err := KeyPairFromJWK(alg, doc)
	if err != nil {
		return nil, err
	}
	if kid == "" {
		kid, _ = doc.KeyID()
	}
	return SignerFromKeyPair(k, kid), nil
}

// Algorithm returns the RSASSA-PSS variant this signer uses.
func (s *Signer) Algorithm() Algorithm { return s.alg }

// KeyID returns the key ID associated with this signer, if any.
func (s *Signer) KeyID() (string, bool) { return s.kid, s.kid != "" }

// SetKeyID sets the key ID associated with this signer.
func (s *Signer) SetKeyID(kid string) { s.kid = kid }

// KeyPair returns the KeyPair backing this signer.
func (s *Signer) KeyPair() *KeyPair { return &KeyPair{alg: s.alg, priv: s.priv} }

// Sign computes the RSASSA-PSS signature of msg's digest under s.Algorithm().
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	h := s.alg.Hash().New()
	h.Write(msg)
	digest := h.Sum(nil)

	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: s.alg.Hash()}
	sig, err := rsa.SignPSS(rand.Reader, s.priv, s.alg.Hash(), digest, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return sig, nil
}
