// Package manifest implements the declared build specification the CLI
// assembles containers from: a JSON or YAML tree of chunks, each carrying a
// literal tag or a pack name and one payload source.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/internal/collision"
	"github.com/arloliu/munge/node"
	"github.com/arloliu/munge/packed"
)

// Node declares one chunk. Exactly one of Tag or Pack names the chunk, and
// at most one payload source applies: File, Text, CString, Data, or
// Children. A node with no payload source becomes an empty leaf.
type Node struct {
	// Tag is the literal 4-character chunk tag.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`
	// Pack names a hash-addressed pack; the tag becomes the name's hash
	// and exactly one child is required.
	Pack string `json:"pack,omitempty" yaml:"pack,omitempty"`

	// File reads the payload from a file, relative to the manifest.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// Text embeds the payload as raw UTF-8 bytes.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// CString embeds the payload as a null-terminated string.
	CString string `json:"cstring,omitempty" yaml:"cstring,omitempty"`
	// Data embeds binary payload bytes (base64 in JSON and YAML).
	Data []byte `json:"data,omitempty" yaml:"data,omitempty"`

	// Children nest chunks, making this a container.
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Manifest is a build specification: one root chunk per output file.
type Manifest struct {
	Root Node `json:"root" yaml:"root"`
}

// Load reads a manifest from path, choosing the codec by file extension:
// .json, or .yaml/.yml.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidManifest, path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidManifest, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported manifest extension %q", errs.ErrInvalidManifest, ext)
	}

	return &m, nil
}

// Build assembles the manifest into w. File payloads resolve relative to
// baseDir (usually the manifest's directory).
func Build(w *node.Writer, m *Manifest, baseDir string) error {
	return buildNode(w, &m.Root, baseDir)
}

func (n *Node) tag() (node.Tag, error) {
	switch {
	case n.Tag != "" && n.Pack != "":
		return node.Tag{}, fmt.Errorf("%w: node declares both tag %q and pack %q", errs.ErrInvalidManifest, n.Tag, n.Pack)
	case n.Pack != "":
		return node.PackTag(n.Pack), nil
	case n.Tag != "":
		t, err := node.ParseTag(n.Tag)
		if err != nil {
			return node.Tag{}, fmt.Errorf("%w: %v", errs.ErrInvalidManifest, err)
		}

		return t, nil
	default:
		return node.Tag{}, fmt.Errorf("%w: node declares neither tag nor pack", errs.ErrInvalidManifest)
	}
}

func (n *Node) payloadSources() int {
	count := 0
	if n.File != "" {
		count++
	}
	if n.Text != "" {
		count++
	}
	if n.CString != "" {
		count++
	}
	if n.Data != nil {
		count++
	}
	if len(n.Children) > 0 {
		count++
	}

	return count
}

func buildNode(w *node.Writer, n *Node, baseDir string) error {
	tag, err := n.tag()
	if err != nil {
		return err
	}

	if n.payloadSources() > 1 {
		return fmt.Errorf("%w: chunk %s declares multiple payload sources", errs.ErrInvalidManifest, tag)
	}
	if n.Pack != "" && len(n.Children) != 1 {
		return fmt.Errorf("%w: pack %q must hold exactly one child, has %d",
			errs.ErrInvalidManifest, n.Pack, len(n.Children))
	}

	if len(n.Children) > 0 {
		// Pack names must stay distinguishable among siblings: lookup
		// resolves hashes within one parent's children only.
		packs := collision.NewTracker()
		for i := range n.Children {
			child := &n.Children[i]
			if child.Pack == "" {
				continue
			}
			if err := packs.TrackName(node.HashName(child.Pack), child.Pack); err != nil {
				return err
			}
		}

		return w.Node(tag, func(w *node.Writer) error {
			for i := range n.Children {
				if err := buildNode(w, &n.Children[i], baseDir); err != nil {
					return err
				}
			}

			return nil
		})
	}

	payload, err := n.payload(baseDir)
	if err != nil {
		return err
	}

	return w.Raw(tag, payload)
}

func (n *Node) payload(baseDir string) ([]byte, error) {
	switch {
	case n.File != "":
		path := n.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read payload file: %w", err)
		}

		return data, nil
	case n.Text != "":
		return []byte(n.Text), nil
	case n.CString != "":
		return packed.AppendCString(nil, n.CString)
	case n.Data != nil:
		return n.Data, nil
	default:
		return nil, nil
	}
}
