// Package session implements the timestamp-signed, tagged-JSON session
// cookie format used by Flask-style web frameworks: base64url framing
// with optional zlib compression, HMAC-SHA1 signatures over a salted
// derived key, and a tag-object extension scheme for non-primitive
// payload values.
package session

import "crypto/hmac"

// DefaultSalt is the key-derivation salt Flask hard codes for session
// cookies.
const DefaultSalt = "cookie-session"

type cacheKey struct {
	secret string
	salt   string
}

// keyCache memoizes derived signing keys. Derivation depends only on
// the secret and salt; the legacy flag affects timestamps, not keys.
var keyCache = newVMap[cacheKey, []byte]()

func cachedKey(secret []byte, salt string) []byte {
	ck := cacheKey{secret: string(secret), salt: salt}
	if key, ok := keyCache.Get(ck); ok {
		return key
	}
	key := deriveKey(secret, salt)
	keyCache.Set(ck, key)
	return key
}

// secretBytes validates that a secret is string-typed and returns its
// raw bytes. Any other type is a SigningError, surfaced before any
// cryptographic work happens.
func secretBytes(secret interface{}) ([]byte, error) {
	switch s := secret.(type) {
	case string:
		return []byte(s), nil
	case []byte:
		return s, nil
	default:
		return nil, &SigningError{Value: secret}
	}
}

// Decode parses a session cookie without verifying its signature and
// returns the payload value. Framing and JSON failures are reported
// as a DecodeError carrying the underlying cause.
func Decode(cookie string) (interface{}, error) {
	f, err := unframe(cookie)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	value, err := unmarshalPayload(f.payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return value, nil
}

// Sign serializes a session value and signs it with the given secret,
// returning the cookie string. The secret must be a string or byte
// slice. Forged cookies are framed uncompressed and carry a timestamp
// taken at call time (legacy mode applies the historical epoch
// subtraction).
func Sign(value, secret interface{}, salt string, legacy bool) (string, error) {
	raw, err := secretBytes(secret)
	if err != nil {
		return "", err
	}
	payload, err := marshalPayload(value)
	if err != nil {
		return "", &SigningError{Value: value, Err: err}
	}
	return composeCookie(payload, timestampNow(legacy), cachedKey(raw, salt)), nil
}

// Verify reports whether the cookie's signature was produced with the
// given secret and salt. Framing and decoding failures are a plain
// false result, never an error; only a non-string-typed secret
// returns a SigningError, checked before any cryptographic work. No
// age check is performed: an expired but correctly signed cookie
// verifies as true.
//
// The legacy flag is accepted for call-site symmetry with Sign but
// does not influence the result: a cookie's signature covers whatever
// timestamp it already carries, so verification is mode-independent.
func Verify(cookie string, secret interface{}, salt string, legacy bool) (bool, error) {
	raw, err := secretBytes(secret)
	if err != nil {
		return false, err
	}
	_ = legacy

	f, err := unframe(cookie)
	if err != nil {
		return false, nil
	}
	return hmac.Equal(signDigest(cachedKey(raw, salt), []byte(f.signed)), f.signature), nil
}
