package node

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_Raw(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Raw(MakeTag("NAME"), []byte("test\x00")))
	require.Equal(t, chunk("NAME", []byte("test\x00")), w.Bytes())
}

func TestWriter_Node_PatchesSize(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	err = w.Node(MakeTag("root"), func(w *Writer) error {
		if err := w.Raw(MakeTag("AAAA"), []byte{1}); err != nil {
			return err
		}

		return w.Raw(MakeTag("BBBB"), []byte{2, 3})
	})
	require.NoError(t, err)

	want := container("root", chunk("AAAA", []byte{1}), chunk("BBBB", []byte{2, 3}))
	require.Equal(t, want, w.Bytes())
}

func TestWriter_NestedNodes(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	err = w.Node(MakeTag("root"), func(w *Writer) error {
		return w.Node(MakeTag("pak_"), func(w *Writer) error {
			return w.Raw(MakeTag("BODY"), []byte{9, 9})
		})
	})
	require.NoError(t, err)

	want := container("root", container("pak_", chunk("BODY", []byte{9, 9})))
	require.Equal(t, want, w.Bytes())

	// The writer's accounting must satisfy the reader's exactly.
	r := newTestReader(t, w.Bytes())
	root, err := r.Root()
	require.NoError(t, err)
	children, err := r.Children(root)
	require.NoError(t, err)
	require.Len(t, children, 1)
}

func TestWriter_WriteTo(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Raw(MakeTag("BODY"), []byte{1, 2, 3}))

	var sink bytes.Buffer
	n, err := w.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(w.Len()), n)
	require.Equal(t, w.Bytes(), sink.Bytes())
}

func TestWriter_Reset(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Raw(MakeTag("BODY"), []byte{1}))
	w.Reset()
	require.Equal(t, 0, w.Len())

	require.NoError(t, w.Raw(MakeTag("NAME"), []byte("x\x00")))
	require.Equal(t, chunk("NAME", []byte("x\x00")), w.Bytes())
}

func TestEncodeRecord_DecodeEncodeIdentity(t *testing.T) {
	// encode(decode(B)) == B when the schema fully captures the input.
	original := container("wpn_", weaponChunks()...)
	r := newTestReader(t, original)
	root, err := r.Root()
	require.NoError(t, err)

	var wpn weaponRecord
	require.NoError(t, DecodeRecord(r, root, &wpn))

	w, err := NewWriter(WithPayloadSource(r))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, EncodeRecord(w, root.Tag, &wpn))
	require.Equal(t, original, w.Bytes())
}

func TestEncodeRecord_EncodeDecodeIdentity(t *testing.T) {
	// decode(encode(V)) == V for an authored record.
	authored := weaponRecord{
		Name:  "repeater",
		Cond:  conditionBroken,
		Range: 3.25,
		Clips: []Element[clipRecord]{
			{Tag: MakeTag("CLP0"), Value: clipRecord{Rounds: 64}},
			{Tag: MakeTag("CLP7"), Value: clipRecord{Rounds: 8}},
		},
		Data: LazyFromBytes[[]byte]([]byte{0xBE, 0xEF}),
	}

	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, EncodeRecord(w, MakeTag("wpn_"), &authored))

	r := newTestReader(t, w.Bytes())
	root, err := r.Root()
	require.NoError(t, err)

	var decoded weaponRecord
	require.NoError(t, DecodeRecord(r, root, &decoded))

	require.Equal(t, authored.Name, decoded.Name)
	require.Equal(t, authored.Cond, decoded.Cond)
	require.Equal(t, authored.Range, decoded.Range)
	require.Equal(t, authored.Clips, decoded.Clips)

	wantData, err := authored.Data.Read(nil, RawPayload)
	require.NoError(t, err)
	gotData, err := decoded.Data.Read(r, RawPayload)
	require.NoError(t, err)
	require.Equal(t, wantData, gotData)
}

func TestEncodeRecord_LazyWithoutSourceFails(t *testing.T) {
	buf := container("wpn_", weaponChunks()...)
	r := newTestReader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)

	var wpn weaponRecord
	require.NoError(t, DecodeRecord(r, root, &wpn))

	w, err := NewWriter() // no payload source
	require.NoError(t, err)
	defer w.Close()

	err = EncodeRecord(w, root.Tag, &wpn)
	require.Error(t, err)
}
