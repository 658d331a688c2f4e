package paramtext

import "testing"

func TestGetSetDelete(t *testing.T) {
	params := map[string]interface{}{
		"color": map[string]interface{}{"r": 1.0, "g": 0.5},
	}

	t.Run("get existing dotted path", func(t *testing.T) {
		v, ok := Get(params, "color.g")
		if !ok || v != 0.5 {
			t.Fatalf("Get(color.g) = (%v, %v), want (0.5, true)", v, ok)
		}
	})

	t.Run("get missing path", func(t *testing.T) {
		_, ok := Get(params, "color.b")
		if ok {
			t.Fatalf("Get(color.b) reported exists, want absent")
		}
	})

	t.Run("set creates intermediate objects and leaves input untouched", func(t *testing.T) {
		updated, err := Set(params, "emission.strength", 0.25)
		if err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, ok := Get(updated, "emission.strength")
		if !ok || v != 0.25 {
			t.Fatalf("Get(emission.strength) after Set = (%v, %v), want (0.25, true)", v, ok)
		}
		if _, ok := Get(params, "emission.strength"); ok {
			t.Fatalf("Set mutated the original params map")
		}
	})

	t.Run("delete removes a path and leaves input untouched", func(t *testing.T) {
		deleted, err := Delete(params, "color.g")
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, ok := Get(deleted, "color.g"); ok {
			t.Fatalf("Delete did not remove color.g")
		}
		if _, ok := Get(params, "color.g"); !ok {
			t.Fatalf("Delete mutated the original params map")
		}
	})
}

func TestCloneValueAndCloneParams(t *testing.T) {
	original := map[string]interface{}{
		"nested": map[string]interface{}{"x": 1.0},
		"list":   []interface{}{1.0, 2.0, 3.0},
	}
	cloned := CloneParams(original)

	nested := cloned["nested"].(map[string]interface{})
	nested["x"] = 99.0
	if original["nested"].(map[string]interface{})["x"] != 1.0 {
		t.Fatalf("mutating the clone affected the original: CloneParams did not deep-copy")
	}

	if CloneParams(nil) != nil {
		t.Fatalf("CloneParams(nil) = non-nil, want nil")
	}
}

func TestEqualIsStructuralAndOrderInsensitive(t *testing.T) {
	a := map[string]interface{}{"r": 1.0, "g": 0.5}
	b := map[string]interface{}{"g": 0.5, "r": 1.0}
	if !Equal(a, b) {
		t.Fatalf("Equal(a, b) = false for structurally identical maps built in different key order")
	}

	c := map[string]interface{}{"r": 1.0, "g": 0.6}
	if Equal(a, c) {
		t.Fatalf("Equal(a, c) = true, want false for differing values")
	}

	if !Equal(nil, nil) {
		t.Fatalf("Equal(nil, nil) = false, want true")
	}

	nestedA := map[string]interface{}{"outer": map[string]interface{}{"a": 1.0, "b": 2.0}}
	nestedB := map[string]interface{}{"outer": map[string]interface{}{"b": 2.0, "a": 1.0}}
	if !Equal(nestedA, nestedB) {
		t.Fatalf("Equal should recurse into nested maps regardless of key order")
	}
}

func TestPretty(t *testing.T) {
	out, err := Pretty(map[string]interface{}{"a": 1.0})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("Pretty returned empty output")
	}
}
