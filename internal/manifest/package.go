package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// PackageFile is the manifest file name written by the package manager.
const PackageFile = "package.json"

// Script is one named command alias in package.json "scripts".
type Script struct {
	Name    string
	Command string
}

// Scripts is an ordered list of command aliases.
type Scripts []Script

// DefaultScripts are the aliases every generated project gets: "start" runs
// the server once, "dev" restarts it on change.
var DefaultScripts = Scripts{
	{Name: "start", Command: "ts-node src/server.ts"},
	{Name: "dev", Command: "nodemon --exec ts-node src/server.ts"},
}

// ErrNotObject is returned when a manifest's top-level value is not a JSON object.
var ErrNotObject = errors.New("manifest is not a JSON object")

// MarshalJSON encodes the scripts as a JSON object in list order.
func (s Scripts) MarshalJSON() ([]byte, error) {
	obj := make(object, 0, len(s))
	for _, sc := range s {
		v, err := json.Marshal(sc.Command)
		if err != nil {
			return nil, err
		}
		obj = obj.set(sc.Name, v)
	}
	return obj.compact()
}

// InjectScripts replaces the "scripts" field of the package.json at path with
// scripts, keeping every other field and its position. It reports false
// without error when the file does not exist.
func InjectScripts(path string, scripts Scripts) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := SetScripts(data, scripts)
	if err != nil {
		return false, fmt.Errorf("updating %s: %w", path, err)
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// SetScripts returns data with its "scripts" field replaced, formatted with
// two-space indentation and a trailing newline.
func SetScripts(data []byte, scripts Scripts) ([]byte, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	raw, err := scripts.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding scripts: %w", err)
	}
	obj = obj.set("scripts", raw)

	compact, err := obj.compact()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// field is one member of a JSON object whose value is kept undecoded.
type field struct {
	Key   string
	Value json.RawMessage
}

// object is a JSON object that remembers member order.
type object []field

// parseObject decodes the top-level members of a JSON object in order.
func parseObject(data []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	var obj object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing manifest: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing manifest: unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parsing manifest field %q: %w", key, err)
		}
		obj = append(obj, field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing manifest: trailing data after object")
	}
	return obj, nil
}

// set replaces the first member named key and drops any later duplicates,
// or appends the member when key is absent.
func (o object) set(key string, value json.RawMessage) object {
	out := o[:0]
	found := false
	for _, f := range o {
		if f.Key != key {
			out = append(out, f)
			continue
		}
		if !found {
			out = append(out, field{Key: key, Value: value})
			found = true
		}
	}
	if !found {
		out = append(out, field{Key: key, Value: value})
	}
	return out
}

// compact encodes the object without insignificant whitespace.
func (o object) compact() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, f.Value); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
