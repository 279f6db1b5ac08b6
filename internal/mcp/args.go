package mcp

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// argumentGetter is satisfied by mcp.CallToolRequest.
type argumentGetter interface {
	GetArguments() map[string]any
}

// coerceBindArguments binds tool arguments to target. Clients frequently send
// every parameter as a string, including JSON-encoded arrays and booleans.
func coerceBindArguments[T any](request argumentGetter, target *T) error {
	jsonStringHook := func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return data, nil
		}

		switch t.Kind() {
		case reflect.Slice:
			if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
				slicePtr := reflect.New(t)
				if err := json.Unmarshal([]byte(raw), slicePtr.Interface()); err == nil {
					return slicePtr.Elem().Interface(), nil
				}
			}
		case reflect.Bool:
			if raw == "true" || raw == "false" {
				return raw == "true", nil
			}
		}
		return data, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(request.GetArguments())
}
