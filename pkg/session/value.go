package session

// Session payloads are generic structured values: nil, bool,
// json.Number, string, []interface{} sequences and map[string]interface{}
// mappings, plus the extended variants below carried on the wire as
// single-entry tag objects.

// Tuple is a fixed-order sequence, semantically distinct from a plain
// sequence. It survives a round trip through the ` t` tag.
type Tuple []interface{}

// Markup is a string flagged as pre-escaped, trusted HTML. It survives
// a round trip through the ` m` tag.
type Markup string
