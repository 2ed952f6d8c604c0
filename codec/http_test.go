package codec

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

type httpResult struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Result     string            `json:"result,omitempty"`
	Extraneous string            `json:"extraneous,omitempty"`
}

// The narrowing policy must drop every field outside
// {status_code, headers, result} before anything is persisted.
func TestHTTPResponseDropsExtraneousFields(t *testing.T) {
	in := httpResult{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Result:     "body",
		Extraneous: "x",
	}
	b, err := HTTPResponse[httpResult]{}.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(b), "extraneous") || strings.Contains(string(b), `"x"`) {
		t.Fatalf("extraneous field leaked into stored payload: %s", b)
	}

	out, err := HTTPResponse[httpResult]{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := in
	want.Extraneous = ""
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("round-trip = %+v, want narrowed %+v", out, want)
	}
}

// Map-shaped values follow the same projection.
func TestHTTPResponseMapValue(t *testing.T) {
	in := map[string]any{
		"status_code": float64(404),
		"headers":     map[string]any{"X-Id": "7"},
		"result":      "not here",
		"debug":       "drop me",
	}
	b, err := HTTPResponse[map[string]any]{}.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := HTTPResponse[map[string]any]{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, leaked := out["debug"]; leaked {
		t.Fatalf("unexpected field survived narrowing: %v", out)
	}
	if out["status_code"] != float64(404) || out["result"] != "not here" {
		t.Fatalf("projected fields mangled: %v", out)
	}
}

// Values that do not marshal to a JSON object cannot be narrowed.
func TestHTTPResponseRejectsNonObject(t *testing.T) {
	if _, err := (HTTPResponse[[]int]{}).Encode([]int{1, 2}); err == nil {
		t.Fatalf("Encode should fail for non-object values")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		N     int            `json:"n"`
		Items []string       `json:"items"`
		Meta  map[string]int `json:"meta"`
	}
	in := payload{N: 3, Items: []string{"a", "b"}, Meta: map[string]int{"k": 1}}
	b, err := JSON[payload]{}.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := JSON[payload]{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round-trip = %+v, want %+v", out, in)
	}
}

func TestJSONEncodeFailure(t *testing.T) {
	// Channels are not JSON-serializable.
	if _, err := (JSON[chan int]{}).Encode(make(chan int)); err == nil {
		t.Fatalf("Encode should fail for a channel")
	}
}

func TestJSONDecodeMalformed(t *testing.T) {
	if _, err := (JSON[map[string]any]{}).Decode([]byte("{not json")); err == nil {
		t.Fatalf("Decode should fail on malformed JSON")
	}
}

func TestLimitCapsDecode(t *testing.T) {
	inner := JSON[string]{}
	big, err := inner.Encode(strings.Repeat("z", 64))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	lc := Limit[string]{Inner: inner, MaxDecode: 8}
	if _, err := lc.Decode(big); err == nil {
		t.Fatalf("Decode should refuse payload over MaxDecode")
	}
	// Encode side is unaffected.
	if _, err := lc.Encode("ok"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

// The persisted form stays valid UTF-8 JSON text.
func TestJSONOutputIsTextual(t *testing.T) {
	b, err := JSON[map[string]string]{}.Encode(map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !json.Valid(b) {
		t.Fatalf("stored payload is not valid JSON: %q", b)
	}
}
