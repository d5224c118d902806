package reflection

import (
	"fmt"
	"reflect"
	"strings"
)

// FormatType formats a reflect.Type for logs and error messages, dropping
// package paths from named types.
func FormatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + FormatType(t.Elem())
	case reflect.Slice:
		if t.Name() != "" {
			return t.Name()
		}
		return "[]" + FormatType(t.Elem())
	case reflect.Array:
		if t.Name() != "" {
			return t.Name()
		}
		return fmt.Sprintf("[%d]%s", t.Len(), FormatType(t.Elem()))
	case reflect.Map:
		if t.Name() != "" {
			return t.Name()
		}
		return fmt.Sprintf("map[%s]%s", FormatType(t.Key()), FormatType(t.Elem()))
	case reflect.Chan:
		if t.Name() != "" {
			return t.Name()
		}
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + FormatType(t.Elem())
		case reflect.SendDir:
			return "chan<- " + FormatType(t.Elem())
		}
		return "chan " + FormatType(t.Elem())
	case reflect.Func:
		if t.Name() != "" {
			return t.Name()
		}
		return formatFunc(t)
	case reflect.Interface:
		if t.Name() != "" {
			return t.Name()
		}
		if t.NumMethod() == 0 {
			return "any"
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}

func formatFunc(t reflect.Type) string {
	params := make([]string, t.NumIn())
	for i := range params {
		params[i] = FormatType(t.In(i))
	}
	if t.IsVariadic() && len(params) > 0 {
		params[len(params)-1] = "..." + FormatType(t.In(t.NumIn()-1).Elem())
	}

	returns := make([]string, t.NumOut())
	for i := range returns {
		returns[i] = FormatType(t.Out(i))
	}

	paramStr := strings.Join(params, ", ")
	switch len(returns) {
	case 0:
		return fmt.Sprintf("func(%s)", paramStr)
	case 1:
		return fmt.Sprintf("func(%s) %s", paramStr, returns[0])
	default:
		return fmt.Sprintf("func(%s) (%s)", paramStr, strings.Join(returns, ", "))
	}
}
