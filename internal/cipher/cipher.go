// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cipher builds the encrypted account parameter that the ScienceON
// gateway expects on token requests: AES-CBC under the caller's API key with
// a fixed IV, URL-safe base64, then query escaping.
package cipher

import (
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
)

// IV is the initialization vector fixed by the gateway.
const IV = "jvHJ1EFA0IXBrxxz"

const datetimeLayout = "20060102150405"

// Encrypt pads plain to the AES block size, encrypts it in CBC mode with key
// and IV, and returns the URL-safe base64 text query-escaped for direct use
// in a URL. The key must be 16, 24 or 32 bytes.
func Encrypt(plain, key string) (string, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", errors.Wrapf(err, "creating cipher from %d-byte key", len(key))
	}

	data := pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(data))
	gocipher.NewCBCEncrypter(block, []byte(IV)).CryptBlocks(out, data)

	return url.QueryEscape(base64.URLEncoding.EncodeToString(out)), nil
}

// pad appends n copies of byte n so the length is a multiple of size. A full
// block of padding is added when the input is already aligned.
func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

type tokenPayload struct {
	Datetime   string `json:"datetime"`
	MacAddress string `json:"mac_address"`
}

// TokenPayload returns the compact JSON document the gateway decrypts on a
// token request.
func TokenPayload(now time.Time, mac string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tokenPayload{Datetime: now.Format(datetimeLayout), MacAddress: mac}); err != nil {
		return "", errors.Wrap(err, "encoding token payload")
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
