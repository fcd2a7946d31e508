package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/format"
	"github.com/arloliu/munge/node"
	"github.com/arloliu/munge/vault"
)

const jsonManifest = `{
  "root": {
    "tag": "ucfb",
    "children": [
      {
        "tag": "scr_",
        "children": [
          {"tag": "NAME", "cstring": "test"},
          {"tag": "INFO", "data": "AQ=="},
          {"tag": "BODY", "file": "body.bin"}
        ]
      },
      {
        "pack": "side",
        "children": [
          {"tag": "lvl_", "children": [{"tag": "BODY", "text": "abc"}]}
        ]
      }
    ]
  }
}`

const yamlManifest = `root:
  tag: ucfb
  children:
    - tag: scr_
      children:
        - tag: NAME
          cstring: test
        - tag: INFO
          data: !!binary AQ==
        - tag: BODY
          file: body.bin
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.bin"), []byte{1, 2, 3}, 0o600))

	return path
}

func buildBytes(t *testing.T, path string) []byte {
	t.Helper()

	m, err := Load(path)
	require.NoError(t, err)

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, Build(w, m, filepath.Dir(path)))

	return bytes.Clone(w.Bytes())
}

func TestLoadAndBuild_JSON(t *testing.T) {
	path := writeManifest(t, "build.json", jsonManifest)
	built := buildBytes(t, path)

	v, err := vault.Open(bytes.NewReader(built))
	require.NoError(t, err)
	require.Equal(t, node.MakeTag("ucfb"), v.Root().Tag)
	require.Len(t, v.Entries(), 2)

	s, err := format.DecodeScript(v.Reader(), v.Entries()[0].Header)
	require.NoError(t, err)
	require.Equal(t, "test", s.Name)
	require.Equal(t, format.ScriptClassMission, s.Class)

	body, err := s.Data(v.Reader())
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, body)

	raw, err := v.ReadRaw("side")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), raw[node.HeaderSize:], "pack child payload")
}

func TestLoadAndBuild_YAML(t *testing.T) {
	path := writeManifest(t, "build.yaml", yamlManifest)
	built := buildBytes(t, path)

	v, err := vault.Open(bytes.NewReader(built))
	require.NoError(t, err)

	s, err := format.DecodeScript(v.Reader(), v.Entries()[0].Header)
	require.NoError(t, err)
	require.Equal(t, "test", s.Name)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeManifest(t, "build.toml", "root = 1")
	_, err := Load(path)
	require.ErrorIs(t, err, errs.ErrInvalidManifest)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeManifest(t, "bad.json", "{not json")
	_, err := Load(path)
	require.ErrorIs(t, err, errs.ErrInvalidManifest)
}

func TestBuild_PackNeedsExactlyOneChild(t *testing.T) {
	m := &Manifest{Root: Node{
		Tag: "ucfb",
		Children: []Node{
			{Pack: "side", Children: []Node{
				{Tag: "AAAA"}, {Tag: "BBBB"},
			}},
		},
	}}

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	err = Build(w, m, ".")
	require.ErrorIs(t, err, errs.ErrInvalidManifest)
}

func TestBuild_PackHashCollision(t *testing.T) {
	// The OR-0x20 transform folds case, so these two names collide.
	m := &Manifest{Root: Node{
		Tag: "ucfb",
		Children: []Node{
			{Pack: "Side", Children: []Node{{Tag: "AAAA"}}},
			{Pack: "side", Children: []Node{{Tag: "BBBB"}}},
		},
	}}

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.ErrorIs(t, Build(w, m, "."), errs.ErrDuplicatePack)
}

func TestBuild_RejectsTagAndPackTogether(t *testing.T) {
	m := &Manifest{Root: Node{Tag: "ucfb", Pack: "side", Children: []Node{{Tag: "AAAA"}}}}

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.ErrorIs(t, Build(w, m, "."), errs.ErrInvalidManifest)
}

func TestBuild_RejectsMultiplePayloadSources(t *testing.T) {
	m := &Manifest{Root: Node{Tag: "BODY", Text: "x", Data: []byte{1}}}

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.ErrorIs(t, Build(w, m, "."), errs.ErrInvalidManifest)
}

func TestBuild_BadTag(t *testing.T) {
	m := &Manifest{Root: Node{Tag: "toolong"}}

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.ErrorIs(t, Build(w, m, "."), errs.ErrInvalidManifest)
}

func TestBuild_EmptyLeaf(t *testing.T) {
	m := &Manifest{Root: Node{Tag: "ucfb"}}

	w, err := node.NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, Build(w, m, "."))
	require.Equal(t, node.AppendHeader(nil, w.Engine(), node.MakeTag("ucfb"), 0), w.Bytes())
}
