package vault

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// splitFrontMatter splits content into the raw YAML block (without
// delimiters) and the remaining body. found is false when the content has no
// leading front-matter block.
func splitFrontMatter(content []byte) (block, rest []byte, found bool) {
	if !bytes.HasPrefix(content, []byte(frontMatterDelimiter+"\n")) &&
		!bytes.HasPrefix(content, []byte(frontMatterDelimiter+"\r\n")) {
		return nil, content, false
	}

	body := content[bytes.IndexByte(content, '\n')+1:]

	for idx := 0; idx < len(body); {
		next := len(body)
		line := body[idx:]
		if lineEnd := bytes.IndexByte(line, '\n'); lineEnd >= 0 {
			line = line[:lineEnd]
			next = idx + lineEnd + 1
		}
		if string(bytes.TrimRight(line, "\r")) == frontMatterDelimiter {
			return body[:idx], body[next:], true
		}
		idx = next
	}

	// Opening delimiter without a closing one: not a front-matter block.
	return nil, content, false
}

// appendAlias returns content with alias appended to the "aliases" list of
// the front-matter block. The block is created if missing, the field is
// created if absent, and a scalar value is promoted to a list. Editing goes
// through yaml.Node so key order and comments in existing front matter
// survive. If the alias is already recorded, content is returned unchanged.
func appendAlias(content []byte, alias string) ([]byte, error) {
	block, rest, found := splitFrontMatter(content)
	if !found {
		header, err := marshalFrontMatter(newMappingWithAliases(alias))
		if err != nil {
			return nil, err
		}
		return append(header, rest...), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}

	mapping := documentMapping(&doc)
	if mapping == nil {
		header, err := marshalFrontMatter(newMappingWithAliases(alias))
		if err != nil {
			return nil, err
		}
		return append(header, rest...), nil
	}

	changed, err := addAliasToMapping(mapping, alias)
	if err != nil {
		return nil, err
	}
	if !changed {
		return content, nil
	}

	header, err := marshalFrontMatter(mapping)
	if err != nil {
		return nil, err
	}
	return append(header, rest...), nil
}

// documentMapping returns the top-level mapping node of a parsed document, or
// nil if the document is empty or not a mapping.
func documentMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil
	}
	return doc.Content[0]
}

// addAliasToMapping mutates mapping so its "aliases" entry contains alias.
// Returns false when the alias was already present.
func addAliasToMapping(mapping *yaml.Node, alias string) (bool, error) {
	aliasNode := &yaml.Node{Kind: yaml.ScalarNode, Value: alias}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if key.Value != "aliases" {
			continue
		}

		switch {
		case value.Kind == yaml.SequenceNode:
			for _, existing := range value.Content {
				if existing.Value == alias {
					return false, nil
				}
			}
			value.Content = append(value.Content, aliasNode)
			return true, nil

		case value.Kind == yaml.ScalarNode && (value.Tag == "!!null" || value.Value == ""):
			mapping.Content[i+1] = &yaml.Node{
				Kind:    yaml.SequenceNode,
				Content: []*yaml.Node{aliasNode},
			}
			return true, nil

		case value.Kind == yaml.ScalarNode:
			if value.Value == alias {
				return false, nil
			}
			// Promote the single existing alias to a list.
			mapping.Content[i+1] = &yaml.Node{
				Kind: yaml.SequenceNode,
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Value: value.Value, Style: value.Style},
					aliasNode,
				},
			}
			return true, nil

		default:
			return false, fmt.Errorf("front matter field %q is not a list or scalar", "aliases")
		}
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "aliases"},
		&yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{aliasNode}},
	)
	return true, nil
}

// newMappingWithAliases builds a fresh front-matter mapping containing only
// an aliases list with the given alias.
func newMappingWithAliases(alias string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "aliases"},
			{Kind: yaml.SequenceNode, Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: alias},
			}},
		},
	}
}

// marshalFrontMatter renders a node as a delimited front-matter block,
// trailing newline included.
func marshalFrontMatter(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	buf.WriteString(frontMatterDelimiter + "\n")
	return buf.Bytes(), nil
}
