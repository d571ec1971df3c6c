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

import "errors"

// ErrInvalidKeyFormat wraps every failure encountered while constructing a
// KeyPair, Signer, or Verifier: unsupported bit length, malformed or
// mistyped JWK parameters, a mismatched "kty"/"use"/"key_ops"/"alg", an
// unrecognized PEM label, a DER structure the recognizer cannot accept, or
// rejection by the underlying crypto/rsa or crypto/x509 call.
var ErrInvalidKeyFormat = errors.New("invalid key format")

// ErrInvalidSignature wraps every failure encountered while signing or
// verifying, including a provider-reported invalid signature.
var ErrInvalidSignature = errors.New("invalid signature")
