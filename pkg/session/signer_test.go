package session

import (
	"bytes"
	"math"
	"testing"

	"github.com/klauspost/compress/zlib"
)

func TestPackTimestampRoundTrip(t *testing.T) {
	for _, ts := range []int64{
		0, 1, 61, 255, 256, 65535, 1293840000, 1700000000,
		1 << 32, math.MaxInt64,
		-1, -62135596800, 1700000000 - legacyEpochDelta, math.MinInt64,
	} {
		got, err := unpackTimestamp(packTimestamp(ts))
		if err != nil {
			t.Fatalf("unpackTimestamp(packTimestamp(%d)): %v", ts, err)
		}
		if got != ts {
			t.Errorf("round trip of %d yielded %d", ts, got)
		}
	}
}

func TestPackTimestampStripsLeadingZeros(t *testing.T) {
	// A present-day timestamp fits four bytes, matching itsdangerous'
	// packing.
	if got := len(packTimestamp(1700000000)); got != 4 {
		t.Errorf("packed length = %d, want 4", got)
	}
	if got := len(packTimestamp(0)); got != 1 {
		t.Errorf("packed length of zero = %d, want 1", got)
	}
	// Negative legacy timestamps keep the full width.
	if got := len(packTimestamp(-5)); got != 8 {
		t.Errorf("packed length of -5 = %d, want 8", got)
	}
}

func TestUnpackTimestampRejectsOversizedInput(t *testing.T) {
	if _, err := unpackTimestamp(make([]byte, 9)); err == nil {
		t.Error("nine-byte timestamp should be rejected")
	}
}

func TestDeriveKey(t *testing.T) {
	key := deriveKey([]byte("CHANGEME"), DefaultSalt)
	if len(key) != 20 {
		t.Fatalf("derived key length = %d, want 20 (SHA-1 digest)", len(key))
	}
	if !bytes.Equal(key, deriveKey([]byte("CHANGEME"), DefaultSalt)) {
		t.Error("derivation is not deterministic")
	}
	if bytes.Equal(key, deriveKey([]byte("CHANGEME"), "other-salt")) {
		t.Error("different salts must derive different keys")
	}
	if bytes.Equal(key, deriveKey([]byte("changeme"), DefaultSalt)) {
		t.Error("different secrets must derive different keys")
	}
}

func TestTimestampNowModes(t *testing.T) {
	modern := timestampNow(false)
	legacy := timestampNow(true)
	if diff := modern - legacy; diff < legacyEpochDelta-1 || diff > legacyEpochDelta+1 {
		t.Errorf("legacy timestamp should trail by the epoch delta, got diff %d", diff)
	}
}

func TestUnframeSegmentCount(t *testing.T) {
	for _, cookie := range []string{"", "abc", "a.b", "a.b.c.d", ".a.b"} {
		if _, err := unframe(cookie); err == nil {
			t.Errorf("unframe(%q) should have failed", cookie)
		}
	}
}

func TestUnframeRejectsBadBase64(t *testing.T) {
	if _, err := unframe("not+valid/segment.AAAA.AAAA"); err == nil {
		t.Error("payload with non-url-safe alphabet should be rejected")
	}
}

func TestUnframeRejectsInvalidUTF8(t *testing.T) {
	cookie := composeCookie([]byte{0xff, 0xfe}, 1700000000, deriveKey([]byte("k"), DefaultSalt))
	if _, err := unframe(cookie); err == nil {
		t.Error("non-UTF-8 payload should be rejected")
	}
}

func TestCompressedCookieRoundTrip(t *testing.T) {
	payload := []byte(`{"hello":"world"}`)

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("compress: %v", err)
	}

	// Assemble the cookie the way itsdangerous does: the
	// compressed-flag dot is part of the signed text.
	key := deriveKey([]byte("CHANGEME"), DefaultSalt)
	signed := "." + b64.EncodeToString(compressed.Bytes()) + "." + b64.EncodeToString(packTimestamp(1700000000))
	cookie := signed + "." + b64.EncodeToString(signDigest(key, []byte(signed)))

	f, err := unframe(cookie)
	if err != nil {
		t.Fatalf("unframe: %v", err)
	}
	if !f.compressed {
		t.Error("compressed flag not detected")
	}
	if !bytes.Equal(f.payload, payload) {
		t.Errorf("payload = %s, want %s", f.payload, payload)
	}
	if f.timestamp != 1700000000 {
		t.Errorf("timestamp = %d, want 1700000000", f.timestamp)
	}

	ok, err := Verify(cookie, "CHANGEME", DefaultSalt, false)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("compressed cookie should verify under its secret")
	}

	value, err := Decode(cookie)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m, ok2 := value.(map[string]interface{})
	if !ok2 || m["hello"] != "world" {
		t.Errorf("decoded value = %#v", value)
	}
}

func TestVerifierMatchesVerify(t *testing.T) {
	cookie, err := Sign(map[string]interface{}{"a": "b"}, "secret", DefaultSalt, false)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	v := NewVerifier(cookie, DefaultSalt)
	if !v.Check([]byte("secret")) {
		t.Error("verifier should accept the signing secret")
	}
	if v.Check([]byte("secretx")) {
		t.Error("verifier should reject a different secret")
	}

	bad := NewVerifier("garbage", DefaultSalt)
	if bad.Check([]byte("secret")) {
		t.Error("malformed cookie must never verify")
	}
}
