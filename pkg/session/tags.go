package session

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Reserved tag keys. A single-entry JSON object whose sole key is one
// of these encodes an extended value type. The leading space is part
// of the wire format.
const (
	tagTuple  = " t"
	tagUUID   = " u"
	tagBytes  = " b"
	tagMarkup = " m"
	tagDate   = " d"
)

// httpDateLayouts are the formats accepted for ` d` values, mirroring
// the RFC1123 / RFC850 / asctime set Flask's tag serializer parses.
var httpDateLayouts = []string{
	http.TimeFormat,
	time.RFC850,
	time.ANSIC,
}

// marshalPayload serializes a session value to compact wire JSON,
// wrapping extended variants in their tag objects. HTML escaping is
// disabled so output stays byte-compatible with Flask's serializer.
func marshalPayload(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(applyTags(value)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// applyTags rewrites a value tree into its wire shape. Plain scalars,
// sequences and mappings pass through; extended variants become tag
// objects. A literal mapping that already looks like a tag object is
// passed through untouched: the ambiguity is inherent to the format.
func applyTags(value interface{}) interface{} {
	switch v := value.(type) {
	case Tuple:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = applyTags(item)
		}
		return map[string]interface{}{tagTuple: items}
	case uuid.UUID:
		// Flask writes uuid.hex: 32 hex chars, no dashes.
		return map[string]interface{}{tagUUID: hexUUID(v)}
	case []byte:
		return map[string]interface{}{tagBytes: base64.StdEncoding.EncodeToString(v)}
	case Markup:
		return map[string]interface{}{tagMarkup: string(v)}
	case time.Time:
		return map[string]interface{}{tagDate: v.UTC().Format(http.TimeFormat)}
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = applyTags(item)
		}
		return items
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = applyTags(item)
		}
		return out
	default:
		return v
	}
}

// unmarshalPayload parses wire JSON and substitutes extended variants
// for their tag objects, innermost values first.
func unmarshalPayload(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON document")
	}
	return stripTags(value), nil
}

// stripTags is the bottom-up inverse of applyTags. Children are
// rewritten before their parent is inspected, so nested extended
// values fold correctly.
func stripTags(value interface{}) interface{} {
	switch v := value.(type) {
	case []interface{}:
		for i, item := range v {
			v[i] = stripTags(item)
		}
		return v
	case map[string]interface{}:
		for key, item := range v {
			v[key] = stripTags(item)
		}
		if len(v) != 1 {
			return v
		}
		for key, item := range v {
			if out, ok := untag(key, item); ok {
				return out
			}
		}
		return v
	default:
		return v
	}
}

// untag resolves one tag object entry. Objects whose key is not
// reserved, or whose value does not parse for the tag, stay ordinary
// mappings.
func untag(key string, value interface{}) (interface{}, bool) {
	switch key {
	case tagTuple:
		if items, ok := value.([]interface{}); ok {
			return Tuple(items), true
		}
	case tagUUID:
		if s, ok := value.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				return id, true
			}
		}
	case tagBytes:
		if s, ok := value.(string); ok {
			if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
				return raw, true
			}
		}
	case tagMarkup:
		if s, ok := value.(string); ok {
			return Markup(s), true
		}
	case tagDate:
		if s, ok := value.(string); ok {
			for _, layout := range httpDateLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t, true
				}
			}
		}
	}
	return nil, false
}

// hexUUID formats a UUID as 32 lowercase hex characters.
func hexUUID(id uuid.UUID) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 32)
	for i, b := range id {
		out[i*2] = hexdigits[b>>4]
		out[i*2+1] = hexdigits[b&0x0f]
	}
	return string(out)
}
