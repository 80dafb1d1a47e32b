package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

const maxLineSize = 1 << 20

// readYAML decodes every document in r. JSON is read through the same path;
// decoding into yaml.Node keeps mapping keys in source order.
func readYAML(r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r)
	var out []any
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		items, err := documentItems(&doc)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
}

// readJSONL decodes one JSON value per non-blank line.
func readJSONL(r io.Reader) ([]any, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var out []any
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var n yaml.Node
		if err := yaml.Unmarshal(text, &n); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := nodeItem(documentRoot(&n))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// documentItems flattens a top-level sequence into its elements.
func documentItems(doc *yaml.Node) ([]any, error) {
	root := documentRoot(doc)
	if root == nil {
		return nil, nil
	}
	if root.Kind != yaml.SequenceNode {
		v, err := nodeItem(root)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}
	items := make([]any, 0, len(root.Content))
	for _, n := range root.Content {
		v, err := nodeItem(n)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}

// nodeItem turns a mapping into a *Record and anything else into its plain
// decoded value.
func nodeItem(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode {
		return nodeItem(n.Alias)
	}
	if n.Kind != yaml.MappingNode {
		return nodeValue(n)
	}
	rec := NewRecord()
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := nodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		rec.Put(n.Content[i].Value, v)
	}
	return rec, nil
}

// nodeValue decodes a field value. Timestamps become time.Time so the
// table sizes them as fixed-width values.
func nodeValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return t, nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}
