package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var recordSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(recordSchema)

// ValidateJSON 校验外部导入的简历 JSON 是否符合内置 schema。
func ValidateJSON(data []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate resume json: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}

// DecodeJSON validates data and decodes it into a Record.
func DecodeJSON(data []byte) (Record, error) {
	if err := ValidateJSON(data); err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode resume json: %w", err)
	}
	if rec.Experience == nil {
		rec.Experience = []Experience{}
	}
	if rec.Education == nil {
		rec.Education = []Education{}
	}
	if rec.Skills == nil {
		rec.Skills = []Skill{}
	}
	return rec, nil
}
