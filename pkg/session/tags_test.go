package session

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMarshalPayloadPlainValues(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value interface{}
		want  string
	}{
		{"null", nil, `null`},
		{"bool", true, `true`},
		{"number", json.Number("42"), `42`},
		{"string", "hello", `"hello"`},
		{"sequence", []interface{}{json.Number("1"), "two"}, `[1,"two"]`},
		{"mapping", map[string]interface{}{"a": false}, `{"a":false}`},
		{"html not escaped", "<b>&</b>", `"<b>&</b>"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := marshalPayload(tc.value)
			if err != nil {
				t.Fatalf("marshalPayload: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMarshalPayloadTagObjects(t *testing.T) {
	id := uuid.MustParse("12345678-1234-5678-1234-567812345678")

	for _, tc := range []struct {
		name  string
		value interface{}
		want  string
	}{
		{"tuple", Tuple{json.Number("1"), json.Number("2")}, `{" t":[1,2]}`},
		{"uuid", id, `{" u":"12345678123456781234567812345678"}`},
		{"bytes", []byte("hi"), `{" b":"aGk="}`},
		{"markup", Markup("<b>hi</b>"), `{" m":"<b>hi</b>"}`},
		{"date", time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC), `{" d":"Wed, 21 Oct 2015 07:28:00 GMT"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := marshalPayload(tc.value)
			if err != nil {
				t.Fatalf("marshalPayload: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestUnmarshalPayloadTagObjects(t *testing.T) {
	for _, tc := range []struct {
		name string
		wire string
		want interface{}
	}{
		{"tuple", `{" t":[1,2]}`, Tuple{json.Number("1"), json.Number("2")}},
		{"uuid undashed", `{" u":"12345678123456781234567812345678"}`,
			uuid.MustParse("12345678-1234-5678-1234-567812345678")},
		{"uuid dashed", `{" u":"12345678-1234-5678-1234-567812345678"}`,
			uuid.MustParse("12345678-1234-5678-1234-567812345678")},
		{"bytes", `{" b":"aGk="}`, []byte("hi")},
		{"markup", `{" m":"<b>hi</b>"}`, Markup("<b>hi</b>")},
		{"nested tuple inside mapping", `{"k":{" t":[{" m":"x"}]}}`,
			map[string]interface{}{"k": Tuple{Markup("x")}}},
		{"two-entry object stays mapping", `{" t":[1]," u":"x"}`,
			map[string]interface{}{" t": []interface{}{json.Number("1")}, " u": "x"}},
		{"non-reserved single key stays mapping", `{"t":[1]}`,
			map[string]interface{}{"t": []interface{}{json.Number("1")}}},
		{"invalid tag payload stays mapping", `{" u":"not a uuid"}`,
			map[string]interface{}{" u": "not a uuid"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := unmarshalPayload([]byte(tc.wire))
			if err != nil {
				t.Fatalf("unmarshalPayload: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalPayloadDates(t *testing.T) {
	want := time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC)

	for _, wire := range []string{
		`{" d":"Wed, 21 Oct 2015 07:28:00 GMT"}`,
		`{" d":"Wednesday, 21-Oct-15 07:28:00 GMT"}`,
	} {
		got, err := unmarshalPayload([]byte(wire))
		if err != nil {
			t.Fatalf("unmarshalPayload(%s): %v", wire, err)
		}
		ts, ok := got.(time.Time)
		if !ok {
			t.Fatalf("got %T, want time.Time", got)
		}
		if !ts.Equal(want) {
			t.Errorf("got %v, want %v", ts, want)
		}
	}
}

func TestUnmarshalPayloadErrors(t *testing.T) {
	for _, wire := range []string{``, `{`, `[1,2`, `{"a":1} trailing`} {
		if _, err := unmarshalPayload([]byte(wire)); err == nil {
			t.Errorf("unmarshalPayload(%q) should have failed", wire)
		}
	}
}

// A legitimate one-entry mapping whose key equals a reserved tag is
// indistinguishable from an extended variant on the wire; it decodes
// as the variant. The ambiguity is inherited from the format and
// reproduced, not resolved.
func TestTagAmbiguityIsPreserved(t *testing.T) {
	literal := map[string]interface{}{" t": []interface{}{json.Number("1")}}

	wire, err := marshalPayload(literal)
	if err != nil {
		t.Fatalf("marshalPayload: %v", err)
	}
	got, err := unmarshalPayload(wire)
	if err != nil {
		t.Fatalf("unmarshalPayload: %v", err)
	}
	if _, ok := got.(Tuple); !ok {
		t.Errorf("single-entry mapping with a reserved key should decode as the extended variant, got %#v", got)
	}
}
