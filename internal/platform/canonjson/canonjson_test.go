package canonjson

import "testing"

func TestMarshalSortsKeys(t *testing.T) {
	t.Parallel()

	out, err := Marshal(map[string]any{"b": 2, "a": 1, "c": map[string]any{"z": true, "y": false}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":1,"b":2,"c":{"y":false,"z":true}}`
	if string(out) != want {
		t.Fatalf("canonical form = %s, want %s", out, want)
	}
}

func TestNormalizeIsKeyOrderInsensitive(t *testing.T) {
	t.Parallel()

	a, err := Normalize([]byte(`{"paging": {"total": 3, "current": 1}, "response": [1, 2]}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	b, err := Normalize([]byte(`{"response":[1,2],"paging":{"current":1,"total":3}}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("normalized forms differ: %s vs %s", a, b)
	}
}

func TestNormalizePreservesNumberText(t *testing.T) {
	t.Parallel()

	out, err := Normalize([]byte(`{"v":10000000000000001}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if string(out) != `{"v":10000000000000001}` {
		t.Fatalf("large integer mangled: %s", out)
	}
}

func TestHashStableAcrossEquivalentDocuments(t *testing.T) {
	t.Parallel()

	_, d1, err := Hash(map[string]any{"x": 1, "y": "a"})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	_, d2, err := Hash(map[string]any{"y": "a", "x": 1})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("digests differ: %s vs %s", d1, d2)
	}
	if len(d1) != 64 {
		t.Fatalf("digest length = %d, want 64", len(d1))
	}
}

func TestNormalizeRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	if _, err := Normalize([]byte(`{"broken`)); err == nil {
		t.Fatal("expected error for truncated document")
	}
}
