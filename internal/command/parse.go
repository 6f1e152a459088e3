package command

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"
)

// Parse turns one line of operator text into an Invocation, validated
// against set. The first whitespace-delimited token is the command
// name; the rest of the line is the argument text, interpreted per the
// descriptor's shape. One-shot command strings pass through here the
// same way.
func Parse(line string, set Set) (Invocation, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Invocation{}, &InputError{Reason: "empty command line"}
	}

	name := trimmed
	rest := ""
	if i := strings.IndexFunc(trimmed, unicode.IsSpace); i >= 0 {
		name = trimmed[:i]
		rest = strings.TrimSpace(trimmed[i:])
	}

	desc, known := set.Lookup(name)
	switch {
	case known:
	case !set.Empty():
		return Invocation{}, &InputError{Command: name, Reason: "unknown command"}
	default:
		// Degraded mode: the server list never arrived, so no name can
		// be rejected here. Builtin hints still shape arguments.
		if hint, ok := builtinHint(name); ok {
			desc = hint
		} else {
			desc = Descriptor{Name: name, Shape: ShapeObject}
		}
	}

	switch desc.Shape {
	case ShapeText:
		return parseText(name, desc, rest)
	case ShapeObject:
		return parseObject(name, desc, rest)
	default:
		if rest != "" {
			return Invocation{}, &InputError{Command: name, Reason: "takes no arguments"}
		}
		return Invocation{Name: name}, nil
	}
}

func parseText(name string, desc Descriptor, rest string) (Invocation, error) {
	value, ok := unquote(rest)
	if !ok {
		return Invocation{}, &InputError{Command: name, Reason: "malformed quoting"}
	}
	if value == "" {
		if desc.Required {
			return Invocation{}, &InputError{Command: name, Reason: "missing " + desc.ArgKey + " argument"}
		}
		return Invocation{Name: name}, nil
	}
	return Invocation{Name: name, Arguments: map[string]any{desc.ArgKey: value}}, nil
}

func parseObject(name string, desc Descriptor, rest string) (Invocation, error) {
	if rest == "" {
		if desc.Required {
			return Invocation{}, &InputError{Command: name, Reason: "missing arguments"}
		}
		return Invocation{Name: name}, nil
	}
	args, err := decodeArguments(rest)
	if err != nil {
		return Invocation{}, &InputError{Command: name, Reason: "arguments must be JSON: " + err.Error()}
	}
	return Invocation{Name: name, Arguments: args}, nil
}

// unquote strips one layer of double quotes from the head of the
// argument text, keeping any text after the closing quote: `"a b" 3`
// becomes `a b 3`. Unquoted text passes through verbatim.
func unquote(text string) (string, bool) {
	if !strings.HasPrefix(text, `"`) {
		return text, true
	}
	rest := text[1:]
	i := strings.IndexByte(rest, '"')
	if i < 0 {
		return "", false
	}
	return rest[:i] + rest[i+1:], true
}

func decodeArguments(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case map[string]any, []any:
	default:
		return nil, errNotStructured
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return v, nil
}

var (
	errNotStructured = errors.New("not an object or array")
	errTrailingData  = errors.New("trailing data after arguments")
)
