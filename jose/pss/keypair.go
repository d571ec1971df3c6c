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
	"crypto/x509"
	"fmt"

	"github.com/deep-rent/rsapss/jose/pss/jwk"
	"github.com/deep-rent/rsapss/jose/pss/pem"
)

// minKeyBits is the smallest RSA modulus this package accepts, matching
// the floor RFC 7518 assumes for PS256/PS384/PS512.
const minKeyBits = 2048

// KeyPair binds an RSA private key to one RSASSA-PSS Algorithm and exports
// it in every representation this package understands: raw PKCS#1 DER,
// PKCS#8/SubjectPublicKeyInfo DER carrying the RSASSA-PSS
// AlgorithmIdentifier, PEM, and JWK.
type KeyPair struct {
	alg  Algorithm
	priv *rsa.PrivateKey
}

// GenerateKeyPair creates a fresh RSA key of the given bit length, bound to
// alg. bits must be at least 2048.
func GenerateKeyPair(alg Algorithm, bits int) (*KeyPair, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unknown algorithm", ErrInvalidKeyFormat)
	}
	if bits < minKeyBits {
		return nil, fmt.Errorf("%w: key length %d is below the %d-bit minimum", ErrInvalidKeyFormat, bits, minKeyBits)
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	return &KeyPair{alg: alg, priv: priv}, nil
}

// KeyPairFromDER parses a private key from DER, accepting either a raw
// PKCS#1 RSAPrivateKey or a PKCS#8 PrivateKeyInfo wrapping one under the
// RSASSA-PSS AlgorithmIdentifier for alg. A PKCS#8 wrapper with any other
// AlgorithmIdentifier is rejected.
func KeyPairFromDER(alg Algorithm, in []byte) (*KeyPair, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unknown algorithm", ErrInvalidKeyFormat)
	}
	body, err := unwrapPKCS8(in, alg, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if priv.N.BitLen() < minKeyBits {
		return nil, fmt.Errorf("%w: key length %d is below the %d-bit minimum", ErrInvalidKeyFormat, priv.N.BitLen(), minKeyBits)
	}
	return &KeyPair{alg: alg, priv: priv}, nil
}

// KeyPairFromPEM parses a private key from its PEM envelope.
func KeyPairFromPEM(alg Algorithm, in []byte) (*KeyPair, error) {
	label, body, err := pem.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if err := checkPEMLabel(label, alg, false, body); err != nil {
		return nil, err
	}
	return KeyPairFromDER(alg, body)
}

// KeyPairFromJWK builds a private key from a JWK Document.
func KeyPairFromJWK(alg Algorithm, doc *jwk.Document) (*KeyPair, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unknown algorithm", ErrInvalidKeyFormat)
	}
	if _, err := jwk.ValidateHeader(doc, alg.KeyType(), alg.Name(), "sign"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	body, err := jwk.AssemblePrivateKey(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if priv.N.BitLen() < minKeyBits {
		return nil, fmt.Errorf("%w: key length %d is below the %d-bit minimum", ErrInvalidKeyFormat, priv.N.BitLen(), minKeyBits)
	}
	return &KeyPair{alg: alg, priv: priv}, nil
}

// Algorithm returns the RSASSA-PSS variant this key pair is bound to.
func (k *KeyPair) Algorithm() Algorithm { return k.alg }

// PrivateKey returns the underlying RSA private key.
func (k *KeyPair) PrivateKey() *rsa.PrivateKey { return k.priv }

// PublicKey returns the underlying RSA public key.
func (k *KeyPair) PublicKey() *rsa.PublicKey { return &k.priv.PublicKey }

// ToPKCS1DER encodes the private key as a raw PKCS#1 RSAPrivateKey DER
// SEQUENCE, without any AlgorithmIdentifier wrapper.
func (k *KeyPair) ToPKCS1DER() []byte {
	return x509.MarshalPKCS1PrivateKey(k.priv)
}

// ToPublicPKCS1DER encodes the public key as a raw PKCS#1 RSAPublicKey DER
// SEQUENCE.
func (k *KeyPair) ToPublicPKCS1DER() []byte {
	return x509.MarshalPKCS1PublicKey(&k.priv.PublicKey)
}

// ToDER encodes the private key as a PKCS#8 PrivateKeyInfo DER SEQUENCE
// carrying the RSASSA-PSS AlgorithmIdentifier bound to k.Algorithm().
func (k *KeyPair) ToDER() []byte {
	return ToPKCS8(k.ToPKCS1DER(), k.alg, false)
}

// ToPublicDER encodes the public key as a PKCS#8 SubjectPublicKeyInfo DER
// SEQUENCE carrying the RSASSA-PSS AlgorithmIdentifier bound to
// k.Algorithm().
func (k *KeyPair) ToPublicDER() []byte {
	return ToPKCS8(k.ToPublicPKCS1DER(), k.alg, true)
}

// ToPEM encodes the private key as a PEM envelope. Both variants wrap the
// PKCS#8 PrivateKeyInfo carrying the RSASSA-PSS AlgorithmIdentifier; when
// traditional is true it is framed under the explicit "RSA-PSS PRIVATE
// KEY" label, otherwise under the generic "PRIVATE KEY" label.
func (k *KeyPair) ToPEM(traditional bool) []byte {
	if traditional {
		return pem.Encode("RSA-PSS PRIVATE KEY", k.ToDER())
	}
	return pem.Encode("PRIVATE KEY", k.ToDER())
}

// ToPublicPEM encodes the public key as a PEM envelope under the "PUBLIC
// KEY" label.
func (k *KeyPair) ToPublicPEM() []byte {
	return pem.Encode("PUBLIC KEY", k.ToPublicDER())
}

// ToJWK exports the private key as a JWK Document with the given key ID
// (omitted if empty).
func (k *KeyPair) ToJWK(kid string) (*jwk.Document, error) {
	return jwk.ExportPrivateKey(k.ToPKCS1DER(), k.alg.KeyType(), k.alg.Name(), kid)
}

// ToPublicJWK exports the public key as a JWK Document with the given key
// ID (omitted if empty).
func (k *KeyPair) ToPublicJWK(kid string) (*jwk.Document, error) {
	return jwk.ExportPublicKey(k.ToPublicPKCS1DER(), k.alg.KeyType(), k.alg.Name(), kid)
}
