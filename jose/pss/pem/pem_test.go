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

package pem_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deep-rent/rsapss/jose/pss/pem"
)

func TestRoundTrip(t *testing.T) {
	body := []byte("some arbitrary DER bytes, not actually valid DER, long enough to wrap across more than one base64 line once encoded")

	enc := pem.Encode("RSA-PSS PRIVATE KEY", body)
	assert.True(t, strings.HasPrefix(string(enc), "-----BEGIN RSA-PSS PRIVATE KEY-----\r\n"))
	assert.True(t, strings.HasSuffix(string(enc), "-----END RSA-PSS PRIVATE KEY-----\r\n"))

	label, decoded, err := pem.Parse(enc)
	require.NoError(t, err)
	assert.Equal(t, "RSA-PSS PRIVATE KEY", label)
	assert.True(t, bytes.Equal(body, decoded))
}

func TestLineWidth(t *testing.T) {
	body := bytes.Repeat([]byte{0x01}, 200)
	enc := pem.Encode("PUBLIC KEY", body)

	lines := strings.Split(strings.TrimSuffix(string(enc), "\r\n"), "\r\n")
	for _, l := range lines[1 : len(lines)-1] {
		assert.LessOrEqual(t, len(l), 64)
	}
}

func TestParseIgnoresSurroundingText(t *testing.T) {
	body := []byte("payload")
	enc := pem.Encode("PUBLIC KEY", body)
	wrapped := append([]byte("some leading junk\n"), enc...)
	wrapped = append(wrapped, []byte("trailing junk\n")...)

	label, decoded, err := pem.Parse(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "PUBLIC KEY", label)
	assert.Equal(t, body, decoded)
}

func TestParseNoData(t *testing.T) {
	_, _, err := pem.Parse([]byte("not a pem block"))
	assert.ErrorIs(t, err, pem.ErrNoPEMData)
}

func TestParseMissingFooter(t *testing.T) {
	_, _, err := pem.Parse([]byte("-----BEGIN PUBLIC KEY-----\r\nAAAA\r\n"))
	assert.ErrorIs(t, err, pem.ErrMalformed)
}

func TestParseMismatchedLabel(t *testing.T) {
	_, _, err := pem.Parse([]byte("-----BEGIN PUBLIC KEY-----\r\nAAAA\r\n-----END PRIVATE KEY-----\r\n"))
	assert.ErrorIs(t, err, pem.ErrMalformed)
}
