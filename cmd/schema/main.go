// Command schema 把 tooled 配置的 JSON Schema 写到 docs/config_schema.json
package main

import (
	"os"
	"path/filepath"

	"github.com/yeisme/tooled/pkg/utils/log"
	"github.com/yeisme/tooled/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/tooled/cmd/schema ../../docs/config_schema.json
func main() {
	target := filepath.Join("docs", "config_schema.json")
	if len(os.Args) > 1 {
		target = os.Args[1]
	}
	if err := write(target); err != nil {
		log.Fatal().Err(err).Str("file", target).Msg("generate config schema")
	}
}

func write(target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	return schema.GenConfigSchema(f)
}
