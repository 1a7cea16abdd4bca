package config

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSeedingJSON(t *testing.T) {
	ws, err := json.Marshal(SeedWebStatic())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if string(ws) != `"WebStatic"` {
		t.Fatalf("WebStatic should encode as a plain string, got %s", ws)
	}

	list, err := json.Marshal(SeedList([]string{"a.com"}))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if string(list) != `{"List":["a.com"]}` {
		t.Fatalf("List should encode as a tagged object, got %s", list)
	}

	var s Seeding
	if err := json.Unmarshal(list, &s); err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Type != List || !reflect.DeepEqual(s.Peers, []string{"a.com"}) {
		t.Fatalf("decoded seeding does not match: %s", s)
	}

	if err := json.Unmarshal([]byte(`"Carrier Pigeon"`), &s); err == nil {
		t.Fatalf("unknown seeding type should not decode")
	}
}
