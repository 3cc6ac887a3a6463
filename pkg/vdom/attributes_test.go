package vdom

import (
	"reflect"
	"testing"
)

func TestAttrHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		key  string
		want string
	}{
		{"Str", Str("f", "asdf"), "f", "asdf"},
		{"Num", Num("w", 1.25), "w", "1.25"},
		{"Int", Int("nr", 123), "nr", "123"},
		{"Flag false", Flag("name", false), "name", "false"},
		{"Flag true", Flag("open", true), "open", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			if got := tt.attr.Value.String(); got != tt.want {
				t.Errorf("Value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewAttrsKeepsInsertionOrder(t *testing.T) {
	as := NewAttrs(Str("z", "1"), Str("a", "2"), Str("m", "3"))
	if got, want := as.Keys(), []string{"z", "a", "m"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestNewAttrsDuplicateKeyReplacesInPlace(t *testing.T) {
	as := NewAttrs(Str("a", "1"), Str("b", "2"), Int("a", 3))

	if as.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", as.Len())
	}
	if got, want := as.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	v, ok := as.Get("a")
	if !ok || v.String() != "3" || v.Kind() != ValueNumber {
		t.Errorf("Get(a) = %v (%v), want number 3", v, ok)
	}
}

func TestNewAttrsSkipsEmpty(t *testing.T) {
	as := NewAttrs(Attr{}, Str("a", "1"), Attr{Value: StringValue("x")})
	if as.Len() != 1 {
		t.Errorf("Len() = %d, want 1", as.Len())
	}
}

func TestAttrsSetDoesNotMutateReceiver(t *testing.T) {
	base := NewAttrs(Str("a", "1"))
	updated := base.Set("a", StringValue("2"))
	added := base.Set("b", StringValue("3"))

	if v, _ := base.Get("a"); v.String() != "1" {
		t.Errorf("receiver mutated: a = %q", v.String())
	}
	if v, _ := updated.Get("a"); v.String() != "2" {
		t.Errorf("updated a = %q, want 2", v.String())
	}
	if base.Len() != 1 || added.Len() != 2 {
		t.Errorf("Len() base=%d added=%d, want 1 and 2", base.Len(), added.Len())
	}
}

func TestAttrsGetMissing(t *testing.T) {
	var as Attrs
	if _, ok := as.Get("missing"); ok {
		t.Error("Get on nil Attrs should report missing")
	}
	if as.Len() != 0 || len(as.Keys()) != 0 {
		t.Error("nil Attrs should be empty")
	}
}
