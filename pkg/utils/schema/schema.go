// Package schema 生成配置文件的 JSON Schema，供编辑器补全和校验
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"

	"github.com/yeisme/tooled/pkg/configs"
)

// ConfigSchema 反射 configs.Config，字段名取 mapstructure 标签，与配置文件的键一致
func ConfigSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
	s := reflector.Reflect(configs.Config{})
	s.Title = "tooled configuration"
	return s
}

// GenConfigSchema 把配置的 JSON Schema 写入 out
func GenConfigSchema(out io.Writer) error {
	schemaJSON, err := json.MarshalIndent(ConfigSchema(), "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(schemaJSON))
	return err
}
