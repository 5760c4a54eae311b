package schema

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestGenConfigSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := GenConfigSchema(&buf); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["title"] != "tooled configuration" {
		t.Errorf("unexpected title %v", doc["title"])
	}
	// 顶层结构通过 $defs 引用
	defs, ok := doc["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("missing $defs in schema")
	}
	cfg, ok := defs["Config"].(map[string]any)
	if !ok {
		t.Fatalf("missing Config definition")
	}
	props := cfg["properties"].(map[string]any)
	for _, key := range []string{"log", "app", "indicator", "decon", "table", "plot"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing section %q", key)
		}
	}
}
