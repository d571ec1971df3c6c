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

// Package jwk provides the JSON Web Key bridge for RSASSA-PSS key
// material: a minimal, JSON-object-backed Document standing in for the
// opaque JWK container a JOSE library normally treats as an external
// dependency (RFC 7517 defines it as "just JSON"), plus the header
// validation and PKCS#1 assembly/extraction that translate between a
// Document's base64url-encoded RSA parameters and a PKCS#1
// RSAPrivateKey/RSAPublicKey DER SEQUENCE.
//
// Document itself knows nothing about RSASSA-PSS, PS256/384/512, or any
// other JWA — it is deliberately as dumb as the Jwk container spec.md
// describes as an external collaborator. Algorithm binding happens one
// layer up, in package pss.
package jwk

import (
	"encoding/base64"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
)

// Document is a JSON Web Key, exposing typed accessors for the header
// parameters every RSA key needs ("kty", "use", "key_ops", "alg", "kid")
// and a generic Parameter/SetParameter pair for the base64url-encoded RSA
// components ("n", "e", "d", "p", "q", "dp", "dq", "qi").
type Document struct {
	kty string
	use string
	ops []string
	alg string
	kid string

	params map[string]jsontext.Value
}

// New creates an empty Document of the given key type.
func New(kty string) *Document {
	return &Document{kty: kty, params: make(map[string]jsontext.Value)}
}

func (d *Document) KeyType() string { return d.kty }

func (d *Document) KeyUse() (string, bool) { return d.use, d.use != "" }
func (d *Document) SetKeyUse(use string)   { d.use = use }

func (d *Document) KeyOperations() ([]string, bool) { return d.ops, d.ops != nil }
func (d *Document) SetKeyOperations(ops []string)   { d.ops = ops }

func (d *Document) Algorithm() (string, bool) { return d.alg, d.alg != "" }
func (d *Document) SetAlgorithm(alg string)   { d.alg = alg }

func (d *Document) KeyID() (string, bool) { return d.kid, d.kid != "" }
func (d *Document) SetKeyID(kid string)   { d.kid = kid }

// Parameter returns the base64url-encoded (URL_SAFE_NO_PAD) string value of
// the named RSA component. ok is false if the parameter is absent, or
// present but not a JSON string.
func (d *Document) Parameter(name string) (value string, ok bool) {
	raw, exists := d.params[name]
	if !exists {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetParameter sets the named RSA component to the given base64url-encoded
// string.
func (d *Document) SetParameter(name, value string) {
	if d.params == nil {
		d.params = make(map[string]jsontext.Value)
	}
	enc, _ := json.Marshal(value)
	d.params[name] = jsontext.Value(enc)
}

// SetParameterBytes base64url-encodes (without padding) raw and stores it
// under name.
func (d *Document) SetParameterBytes(name string, raw []byte) {
	d.SetParameter(name, base64.RawURLEncoding.EncodeToString(raw))
}

// ParameterBytes is a convenience wrapper over Parameter that base64url
// (URL_SAFE_NO_PAD) decodes the stored value.
func (d *Document) ParameterBytes(name string) ([]byte, error) {
	s, ok := d.Parameter(name)
	if !ok {
		return nil, fmt.Errorf("missing or non-string parameter %q", name)
	}
	return base64.RawURLEncoding.DecodeString(s)
}

type header struct {
	Kty    string         `json:"kty"`
	Use    string         `json:"use,omitzero"`
	Ops    []string       `json:"key_ops,omitzero"`
	Alg    string         `json:"alg,omitzero"`
	Kid    string         `json:"kid,omitzero"`
	Params jsontext.Value `json:",unknown"`
}

// Parse decodes a Document from its JSON representation.
func Parse(data []byte) (*Document, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("invalid json format: %w", err)
	}
	params := make(map[string]jsontext.Value)
	if len(h.Params) > 0 {
		if err := json.Unmarshal(h.Params, &params); err != nil {
			return nil, fmt.Errorf("invalid key material: %w", err)
		}
	}
	return &Document{
		kty:    h.Kty,
		use:    h.Use,
		ops:    h.Ops,
		alg:    h.Alg,
		kid:    h.Kid,
		params: params,
	}, nil
}

// Marshal encodes the Document back to its JSON representation.
func (d *Document) Marshal() ([]byte, error) {
	params, err := json.Marshal(d.params)
	if err != nil {
		return nil, err
	}
	h := header{
		Kty:    d.kty,
		Use:    d.use,
		Ops:    d.ops,
		Alg:    d.alg,
		Kid:    d.kid,
		Params: jsontext.Value(params),
	}
	return json.Marshal(&h)
}
