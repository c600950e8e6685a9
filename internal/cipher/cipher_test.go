// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cipher

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDeterministic(t *testing.T) {
	a, err := Encrypt(`{"datetime":"20260101120000","mac_address":"00:11:22:33:44:55"}`, testKey)
	require.NoError(t, err)
	b, err := Encrypt(`{"datetime":"20260101120000","mac_address":"00:11:22:33:44:55"}`, testKey)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotContains(t, a, "=", "padding characters are percent-encoded")
}

func TestEncryptRoundTrip(t *testing.T) {
	for _, plain := range []string{"", "a", "exactly16bytes!!", "한글 페이로드", strings.Repeat("x", 100)} {
		enc, err := Encrypt(plain, testKey)
		require.NoError(t, err)
		got, err := decrypt(enc, testKey)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestEncryptRejectsBadKey(t *testing.T) {
	_, err := Encrypt("payload", "short")
	assert.Error(t, err)
}

func TestPad(t *testing.T) {
	tests := []struct {
		in      int
		wantLen int
		wantPad byte
	}{
		{0, 16, 16},
		{1, 16, 15},
		{15, 16, 1},
		{16, 32, 16},
		{17, 32, 15},
	}
	for _, tt := range tests {
		got := pad(make([]byte, tt.in), 16)
		if len(got) != tt.wantLen {
			t.Errorf("pad(%d) len = %d, want %d", tt.in, len(got), tt.wantLen)
		}
		if got[len(got)-1] != tt.wantPad {
			t.Errorf("pad(%d) last byte = %d, want %d", tt.in, got[len(got)-1], tt.wantPad)
		}
	}
}

func TestTokenPayload(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	got, err := TokenPayload(now, "AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, `{"datetime":"20260304050607","mac_address":"AA:BB:CC:DD:EE:FF"}`, got)
}

func decrypt(encoded, key string) (string, error) {
	unescaped, err := url.QueryUnescape(encoded)
	if err != nil {
		return "", errors.Wrap(err, "unescaping ciphertext")
	}
	data, err := base64.URLEncoding.DecodeString(unescaped)
	if err != nil {
		return "", errors.Wrap(err, "decoding ciphertext")
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", errors.Newf("ciphertext length %d is not a multiple of the block size", len(data))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", errors.Wrapf(err, "creating cipher from %d-byte key", len(key))
	}
	out := make([]byte, len(data))
	gocipher.NewCBCDecrypter(block, []byte(IV)).CryptBlocks(out, data)

	n := int(out[len(out)-1])
	if n == 0 || n > aes.BlockSize || n > len(out) {
		return "", errors.New("invalid padding")
	}
	return string(out[:len(out)-n]), nil
}
