package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/munge/errs"
	"github.com/arloliu/munge/node"
)

func TestDecodePack(t *testing.T) {
	inner := wrap("scr_",
		rawChunk("NAME", []byte("test\x00")),
		rawChunk("INFO", []byte{0x01}),
		rawChunk("BODY", []byte{1, 2, 3}),
	)
	packTag := node.TagFromUint32(0xD8616526)
	buf := wrap("root", rawChunk(string(packTag[:]), inner))

	r := reader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	children, err := r.Children(root)
	require.NoError(t, err)
	require.Len(t, children, 1)

	p, err := DecodePack(r, children[0])
	require.NoError(t, err)
	require.Equal(t, uint32(0xD8616526), p.NameHash)
	require.Equal(t, TagScript, p.Contents.Tag)

	s, err := DecodeScript(r, p.Contents)
	require.NoError(t, err)
	require.Equal(t, "test", s.Name)
}

func TestDecodePack_TwoChildrenFatal(t *testing.T) {
	packTag := node.TagFromUint32(0xD8616526)
	buf := wrap("root", wrap(string(packTag[:]),
		rawChunk("AAAA", nil),
		rawChunk("BBBB", nil),
	))

	r := reader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	children, err := r.Children(root)
	require.NoError(t, err)

	_, err = DecodePack(r, children[0])
	require.ErrorIs(t, err, errs.ErrInvalidPackContents)
}
