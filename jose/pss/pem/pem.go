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

// Package pem frames DER-encoded key material in the textual PEM envelope:
// a "-----BEGIN <label>-----" header, base64-encoded body wrapped at 64
// columns, and a matching "-----END <label>-----" trailer, each line
// terminated with CRLF.
//
// The standard library's encoding/pem is deliberately not used here: its
// Block carries an arbitrary Headers map, which is wider than the
// header-free framing this package implements. Encode always emits CRLF
// line endings; Parse ignores CR, LF, space, and tab inside the body, so
// LF-only input is accepted too. Reimplementing the narrow slice actually needed
// keeps the framing under this package's own control, in the spirit of
// internal/der owning its own TLV encoding rather than reaching for
// encoding/asn1.
package pem

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
)

const lineWidth = 64

var (
	// ErrNoPEMData is returned by Parse when in contains no recognizable
	// PEM block.
	ErrNoPEMData = errors.New("pem: no PEM data found")
	// ErrMalformed is returned by Parse when a BEGIN line is found but the
	// block is missing its matching END line, or the label does not
	// match.
	ErrMalformed = errors.New("pem: malformed PEM block")
)

// Encode wraps body in a PEM envelope with the given label.
func Encode(label string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "-----BEGIN %s-----\r\n", label)

	enc := base64.StdEncoding.EncodeToString(body)
	for len(enc) > 0 {
		n := min(len(enc), lineWidth)
		buf.WriteString(enc[:n])
		buf.WriteString("\r\n")
		enc = enc[n:]
	}

	fmt.Fprintf(&buf, "-----END %s-----\r\n", label)
	return buf.Bytes()
}

// Parse locates the first PEM block in in and returns its label and
// decoded body.
func Parse(in []byte) (label string, body []byte, err error) {
	begin := []byte("-----BEGIN ")
	start := bytes.Index(in, begin)
	if start < 0 {
		return "", nil, ErrNoPEMData
	}
	rest := in[start+len(begin):]

	end := bytes.Index(rest, []byte("-----"))
	if end < 0 {
		return "", nil, ErrMalformed
	}
	label = string(rest[:end])
	rest = rest[end+len("-----"):]

	footer := "-----END " + label + "-----"
	footerIdx := bytes.Index(rest, []byte(footer))
	if footerIdx < 0 {
		return "", nil, ErrMalformed
	}
	encoded := rest[:footerIdx]

	var clean bytes.Buffer
	for _, b := range encoded {
		switch b {
		case '\r', '\n', ' ', '\t':
			continue
		default:
			clean.WriteByte(b)
		}
	}

	body, err = base64.StdEncoding.DecodeString(clean.String())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return label, body, nil
}
