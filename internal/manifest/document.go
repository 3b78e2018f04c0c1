package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/namewta/forge/internal/errs"
)

const indent = "  "

type member struct {
	key   string
	value json.RawMessage
}

// Document is a JSON object that remembers the order of its keys.
type Document struct {
	members []member
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Parse decodes a top-level JSON object. A repeated key keeps its first
// position and takes the last value.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top-level value must be an object")
	}

	doc := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding value of %q: %w", key, err)
		}
		doc.setRaw(key, raw)
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}

	return doc, nil
}

// Load reads and parses the JSON object at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Newf(errs.MissingFile, "missing file: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidJSON, fmt.Sprintf("invalid JSON at %s", path), err)
	}
	return doc, nil
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.members))
	for i, m := range d.members {
		keys[i] = m.key
	}
	return keys
}

// Get returns the raw JSON value stored under key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	if i := d.index(key); i >= 0 {
		return d.members[i].value, true
	}
	return nil, false
}

// String returns the value under key as text: the decoded string for JSON
// strings, the raw JSON text for anything else.
func (d *Document) String(key string) (string, bool) {
	raw, ok := d.Get(key)
	if !ok {
		return "", false
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return string(raw), true
}

// Set overwrites key in place, or appends it when absent.
func (d *Document) Set(key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	d.setRaw(key, raw)
	return nil
}

// Marshal renders the document with two-space indentation, leaving
// non-ASCII and HTML characters unescaped, and a trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	if len(d.members) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, m := range d.members {
		key, err := encodeValue(m.key)
		if err != nil {
			return nil, err
		}
		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		value, err := unescapeStrings(m.value)
		if err != nil {
			return nil, fmt.Errorf("formatting %q: %w", m.key, err)
		}
		if err := json.Indent(&buf, value, indent, indent); err != nil {
			return nil, fmt.Errorf("formatting %q: %w", m.key, err)
		}
		if i < len(d.members)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// WriteFile marshals the document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (d *Document) index(key string) int {
	for i, m := range d.members {
		if m.key == key {
			return i
		}
	}
	return -1
}

func (d *Document) setRaw(key string, raw json.RawMessage) {
	if i := d.index(key); i >= 0 {
		d.members[i].value = raw
		return
	}
	d.members = append(d.members, member{key: key, value: raw})
}

func encodeValue(v any) (json.RawMessage, error) {
	if raw, ok := v.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("invalid raw JSON")
		}
		return raw, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// unescapeStrings re-encodes every string literal in raw, so values loaded
// with \u escapes are written with the characters themselves.
func unescapeStrings(raw json.RawMessage) (json.RawMessage, error) {
	if bytes.IndexByte(raw, '\\') < 0 {
		return raw, nil
	}

	var out bytes.Buffer
	for i := 0; i < len(raw); {
		if raw[i] != '"' {
			out.WriteByte(raw[i])
			i++
			continue
		}

		end := i + 1
		for end < len(raw) && raw[end] != '"' {
			if raw[end] == '\\' {
				end++
			}
			end++
		}
		if end >= len(raw) {
			return nil, fmt.Errorf("unterminated string")
		}

		var s string
		if err := json.Unmarshal(raw[i:end+1], &s); err != nil {
			return nil, err
		}
		enc, err := encodeValue(s)
		if err != nil {
			return nil, err
		}
		out.Write(enc)
		i = end + 1
	}
	return out.Bytes(), nil
}
