// Package checkers provides quicktest checkers shared by sebas tests.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

type jsonPathChecker struct {
	path string
}

// JSONPathEquals returns a checker asserting that the JSON document in got
// (a []byte, string or json.RawMessage) holds want at the given JSONPath
// expression. want is normalized through encoding/json, so int literals
// compare equal to decoded JSON numbers.
//
//	c.Assert(data, checkers.JSONPathEquals("$.mcpServers.sebas.command"), "sebas")
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

// ArgNames implements qt.Checker.
func (c *jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

// Check implements qt.Checker.
func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var raw []byte
	switch v := got.(type) {
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return qt.BadCheckf("got must be []byte, json.RawMessage or string, not %T", got)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("cannot decode JSON: %w", err)
	}
	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		note("path", c.path)
		return fmt.Errorf("cannot read JSON path: %w", err)
	}

	want, err := normalize(args[0])
	if err != nil {
		return qt.BadCheckf("cannot normalize want: %v", err)
	}
	if !reflect.DeepEqual(value, want) {
		note("path", c.path)
		note("value", value)
		return errors.New("values are not equal")
	}
	return nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	return out, json.Unmarshal(b, &out)
}
