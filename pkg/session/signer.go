package session

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
)

// legacyEpochDelta is the number of seconds between 0001-01-01T00:00:00Z
// and the Unix epoch. Early versions of the itsdangerous signer
// subtracted this from the current time when generating timestamps;
// legacy mode reproduces the subtraction for cookies minted by
// pre-fix deployments.
const legacyEpochDelta int64 = 62135596800

// b64 is the cookie segment encoding: base64url without padding.
var b64 = base64.URLEncoding.WithPadding(base64.NoPadding)

// deriveKey computes the signing key for a secret and salt:
// HMAC-SHA1(key=secret, message=salt), raw 20-byte digest.
func deriveKey(secret []byte, salt string) []byte {
	mac := hmac.New(sha1.New, secret)
	mac.Write([]byte(salt))
	return mac.Sum(nil)
}

// signDigest computes the raw signature over the signed portion of a
// cookie: HMAC-SHA1(key=derived key, message=payload "." timestamp).
func signDigest(key, signed []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(signed)
	return mac.Sum(nil)
}

// timestampNow returns the timestamp a signature minted right now
// would carry. Legacy mode subtracts legacyEpochDelta.
func timestampNow(legacy bool) int64 {
	now := time.Now().Unix()
	if legacy {
		now -= legacyEpochDelta
	}
	return now
}

// packTimestamp encodes a timestamp as a big-endian integer with
// leading zero bytes stripped, matching itsdangerous' own packing for
// non-negative values. Negative values (possible in
// legacy mode) keep all eight bytes so the sign bit is preserved.
func packTimestamp(ts int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ts))
	if ts < 0 {
		return buf[:]
	}
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// unpackTimestamp is the inverse of packTimestamp. An eight-byte
// buffer with the sign bit set decodes as a negative value; shorter
// buffers are zero-stripped non-negative values.
func unpackTimestamp(raw []byte) (int64, error) {
	if len(raw) > 8 {
		return 0, ErrBadTimestamp
	}
	var buf [8]byte
	copy(buf[8-len(raw):], raw)
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// frame is the parsed form of a signed cookie.
type frame struct {
	payload    []byte // decoded, decompressed UTF-8 JSON text
	signed     string // cookie text covered by the signature
	timestamp  int64
	signature  []byte
	compressed bool
}

// unframe splits a cookie into its payload, timestamp and signature
// segments, decoding and decompressing the payload. The signature
// covers everything before the final separator, including the
// compressed-flag dot when present.
func unframe(cookie string) (*frame, error) {
	f := &frame{}

	body := cookie
	if strings.HasPrefix(body, ".") {
		f.compressed = true
		body = body[1:]
	}

	parts := strings.Split(body, ".")
	if len(parts) != 3 {
		return nil, ErrSegmentCount
	}

	payload, err := b64.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("payload segment: %w", err)
	}
	if f.compressed {
		payload, err = inflate(payload)
		if err != nil {
			return nil, fmt.Errorf("payload decompression: %w", err)
		}
	}
	if !utf8.Valid(payload) {
		return nil, ErrPayloadNotUTF
	}
	f.payload = payload

	tsRaw, err := b64.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("timestamp segment: %w", err)
	}
	f.timestamp, err = unpackTimestamp(tsRaw)
	if err != nil {
		return nil, err
	}

	f.signature, err = b64.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("signature segment: %w", err)
	}

	f.signed = cookie[:strings.LastIndexByte(cookie, '.')]
	return f, nil
}

// composeCookie assembles payload bytes, a timestamp and a derived key
// into a signed cookie string. Forged cookies are never compressed;
// compression is a decode-time accommodation for cookies produced
// elsewhere.
func composeCookie(payload []byte, ts int64, key []byte) string {
	signed := b64.EncodeToString(payload) + "." + b64.EncodeToString(packTimestamp(ts))
	return signed + "." + b64.EncodeToString(signDigest(key, []byte(signed)))
}

// inflate decompresses a zlib-deflated payload.
func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Verifier checks many candidate secrets against a single cookie. The
// cookie is unframed once up front; Check then costs two HMAC-SHA1
// computations per candidate. A cookie that fails to unframe yields a
// Verifier whose Check is always false, mirroring Verify's behavior
// of treating framing errors as a non-match.
type Verifier struct {
	salt   string
	signed []byte
	sig    []byte
	ok     bool
}

// NewVerifier prepares a verifier for the given cookie and salt.
func NewVerifier(cookie, salt string) *Verifier {
	v := &Verifier{salt: salt}
	f, err := unframe(cookie)
	if err != nil {
		return v
	}
	v.signed = []byte(f.signed)
	v.sig = f.signature
	v.ok = true
	return v
}

// Check reports whether the cookie's signature was produced with the
// given secret. Keys are derived inline rather than through the
// shared cache: cracking streams millions of distinct candidates and
// memoizing them would only grow memory.
func (v *Verifier) Check(secret []byte) bool {
	if !v.ok {
		return false
	}
	return hmac.Equal(signDigest(deriveKey(secret, v.salt), v.signed), v.sig)
}
