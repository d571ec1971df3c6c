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

package pss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deep-rent/rsapss/jose/pss"
	"github.com/deep-rent/rsapss/jose/pss/pem"
)

var msg = []byte("abcde12345")

var algorithms = []pss.Algorithm{pss.PS256, pss.PS384, pss.PS512}

func TestSignAndVerify(t *testing.T) {
	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			k, err := pss.GenerateKeyPair(alg, 2048)
			require.NoError(t, err)

			signer := pss.SignerFromKeyPair(k, "kid-1")
			sig, err := signer.Sign(msg)
			require.NoError(t, err)

			verifier := pss.VerifierFromKeyPair(k, "kid-1")
			assert.NoError(t, verifier.Verify(msg, sig))
		})
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	k, err := pss.GenerateKeyPair(pss.PS256, 2048)
	require.NoError(t, err)

	signer := pss.SignerFromKeyPair(k, "")
	sig, err := signer.Sign(msg)
	require.NoError(t, err)
	sig[0] ^= 0xFF

	verifier := pss.VerifierFromKeyPair(k, "")
	err = verifier.Verify(msg, sig)
	assert.ErrorIs(t, err, pss.ErrInvalidSignature)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	k, err := pss.GenerateKeyPair(pss.PS256, 2048)
	require.NoError(t, err)

	signer := pss.SignerFromKeyPair(k, "")
	sig, err := signer.Sign(msg)
	require.NoError(t, err)

	verifier := pss.VerifierFromKeyPair(k, "")
	err = verifier.Verify([]byte("tampered"), sig)
	assert.ErrorIs(t, err, pss.ErrInvalidSignature)
}

func TestGenerateKeyPairRejectsShortKeys(t *testing.T) {
	_, err := pss.GenerateKeyPair(pss.PS256, 1024)
	assert.ErrorIs(t, err, pss.ErrInvalidKeyFormat)
}

func TestDERRoundTrip(t *testing.T) {
	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			k, err := pss.GenerateKeyPair(alg, 2048)
			require.NoError(t, err)

			der := k.ToDER()
			k2, err := pss.KeyPairFromDER(alg, der)
			require.NoError(t, err)
			assert.Equal(t, k.PrivateKey().D, k2.PrivateKey().D)

			pubDER := k.ToPublicDER()
			v, err := pss.VerifierFromDER(alg, pubDER, "")
			require.NoError(t, err)
			assert.Equal(t, k.PublicKey().N, v.PublicKey().N)
		})
	}
}

func TestDERRoundTripRawPKCS1(t *testing.T) {
	k, err := pss.GenerateKeyPair(pss.PS256, 2048)
	require.NoError(t, err)

	k2, err := pss.KeyPairFromDER(pss.PS256, k.ToPKCS1DER())
	require.NoError(t, err)
	assert.Equal(t, k.PrivateKey().D, k2.PrivateKey().D)

	v, err := pss.VerifierFromDER(pss.PS256, k.ToPublicPKCS1DER(), "")
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey().N, v.PublicKey().N)
}

func TestPEMRoundTrip(t *testing.T) {
	for _, traditional := range []bool{true, false} {
		k, err := pss.GenerateKeyPair(pss.PS384, 2048)
		require.NoError(t, err)

		pemBytes := k.ToPEM(traditional)
		k2, err := pss.KeyPairFromPEM(pss.PS384, pemBytes)
		require.NoError(t, err)
		assert.Equal(t, k.PrivateKey().D, k2.PrivateKey().D)

		pubPEM := k.ToPublicPEM()
		v, err := pss.VerifierFromPEM(pss.PS384, pubPEM, "")
		require.NoError(t, err)
		assert.Equal(t, k.PublicKey().N, v.PublicKey().N)
	}
}

func TestKeyPairFromPEMRejectsUnrecognizedLabel(t *testing.T) {
	k, err := pss.GenerateKeyPair(pss.PS256, 2048)
	require.NoError(t, err)

	block := pem.Encode("EC PRIVATE KEY", k.ToPKCS1DER())
	_, err = pss.KeyPairFromPEM(pss.PS256, block)
	assert.ErrorIs(t, err, pss.ErrInvalidKeyFormat)
}

func TestVerifierFromPEMRejectsAlgorithmMismatch(t *testing.T) {
	k, err := pss.GenerateKeyPair(pss.PS256, 2048)
	require.NoError(t, err)

	// A "PUBLIC KEY" PEM whose SubjectPublicKeyInfo is bound to PS256 must
	// not be accepted by a PS384 verifier just because it parses.
	pubPEM := k.ToPublicPEM()
	_, err = pss.VerifierFromPEM(pss.PS384, pubPEM, "")
	assert.ErrorIs(t, err, pss.ErrInvalidKeyFormat)
}

func TestJWKRoundTrip(t *testing.T) {
	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			k, err := pss.GenerateKeyPair(alg, 2048)
			require.NoError(t, err)

			doc, err := k.ToJWK("kid-1")
			require.NoError(t, err)

			signer, err := pss.SignerFromJWK(alg, doc, "")
			require.NoError(t, err)
			kid, ok := signer.KeyID()
			require.True(t, ok)
			assert.Equal(t, "kid-1", kid)

			sig, err := signer.Sign(msg)
			require.NoError(t, err)

			pubDoc, err := k.ToPublicJWK("kid-1")
			require.NoError(t, err)
			verifier, err := pss.VerifierFromJWK(alg, pubDoc, "")
			require.NoError(t, err)
			assert.NoError(t, verifier.Verify(msg, sig))
		})
	}
}

func TestSignerFromJWKRejectsWrongAlgorithm(t *testing.T) {
	k, err := pss.GenerateKeyPair(pss.PS256, 2048)
	require.NoError(t, err)

	doc, err := k.ToJWK("")
	require.NoError(t, err)

	_, err = pss.SignerFromJWK(pss.PS384, doc, "")
	assert.ErrorIs(t, err, pss.ErrInvalidKeyFormat)
}

func TestSignatureLen(t *testing.T) {
	assert.Equal(t, 342, pss.PS256.SignatureLen())
	assert.Equal(t, 342, pss.PS384.SignatureLen())
	assert.Equal(t, 342, pss.PS512.SignatureLen())
}

func TestAlgorithmMetadata(t *testing.T) {
	assert.Equal(t, "PS256", pss.PS256.String())
	assert.Equal(t, "RSA", pss.PS256.KeyType())
	assert.Equal(t, 32, pss.PS256.SaltLen())
	assert.Equal(t, 48, pss.PS384.SaltLen())
	assert.Equal(t, 64, pss.PS512.SaltLen())
}
