package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/munge/errs"
)

func TestHashName(t *testing.T) {
	require.Equal(t, uint32(0x266561d8), HashName("all_fly_snowspeeder"))
	require.Equal(t, HashName("SnowSpeeder"), HashName("snowspeeder"))
}

func TestPackTag(t *testing.T) {
	tag := PackTag("all_fly_snowspeeder")
	require.Equal(t, uint32(0x266561d8), tag.Uint32())
}

func TestResolvePack(t *testing.T) {
	inner := container("wpn_", weaponChunks()...)
	packTag := PackTag("all_fly_snowspeeder")
	packChunk := chunk(string(packTag[:]), inner)
	buf := container("root", packChunk)

	r := newTestReader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	packs, err := r.Children(root)
	require.NoError(t, err)
	require.Len(t, packs, 1)

	hash, contents, err := ResolvePack(r, packs[0])
	require.NoError(t, err)
	require.Equal(t, uint32(0x266561d8), hash)
	require.Equal(t, MakeTag("wpn_"), contents.Tag)

	var w weaponRecord
	require.NoError(t, DecodeRecord(r, contents, &w))
	require.Equal(t, "blaster", w.Name)
}

func TestResolvePack_HashIsLittleEndianTag(t *testing.T) {
	// Tag bytes 26 65 61 D8 reinterpret to hash 0xD8616526.
	inner := chunk("BODY", []byte{1})
	packTag := TagFromUint32(0xD8616526)
	packChunk := chunk(string(packTag[:]), inner)
	buf := container("root", packChunk)

	r := newTestReader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	packs, err := r.Children(root)
	require.NoError(t, err)

	hash, _, err := ResolvePack(r, packs[0])
	require.NoError(t, err)
	require.Equal(t, uint32(0xD8616526), hash)
}

func TestResolvePack_TwoChildren(t *testing.T) {
	packTag := PackTag("x")
	packChunk := chunk(string(packTag[:]),
		append(chunk("AAAA", nil), chunk("BBBB", nil)...))
	buf := container("root", packChunk)

	r := newTestReader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	packs, err := r.Children(root)
	require.NoError(t, err)

	_, _, err = ResolvePack(r, packs[0])
	require.ErrorIs(t, err, errs.ErrInvalidPackContents)
}

func TestResolvePack_Empty(t *testing.T) {
	packTag := PackTag("x")
	packChunk := chunk(string(packTag[:]), nil)
	buf := container("root", packChunk)

	r := newTestReader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	packs, err := r.Children(root)
	require.NoError(t, err)

	_, _, err = ResolvePack(r, packs[0])
	require.ErrorIs(t, err, errs.ErrInvalidPackContents)
}
