package node

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/munge/errs"
)

func TestLazy_ReadIsIdempotent(t *testing.T) {
	buf := container("root", chunk("BODY", []byte{1, 2, 3}))
	r := newTestReader(t, buf)
	root, err := r.Root()
	require.NoError(t, err)
	children, err := r.Children(root)
	require.NoError(t, err)

	lazy := LazyFromHeader[[]byte](children[0])

	first, err := lazy.Read(r, RawPayload)
	require.NoError(t, err)
	second, err := lazy.Read(r, RawPayload)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []byte{1, 2, 3}, first)
}

func TestLazy_ConcurrentReadsOverSeparateHandles(t *testing.T) {
	buf := container("root", chunk("BODY", []byte{7, 8, 9}))
	base := newTestReader(t, buf)
	root, err := base.Root()
	require.NoError(t, err)
	children, err := base.Children(root)
	require.NoError(t, err)

	// A Lazy is plain data: copies may be read from different goroutines
	// as long as each uses its own stream handle over the same bytes.
	lazy := LazyFromHeader[[]byte](children[0])

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			r, err := NewReader(bytes.NewReader(buf))
			if err != nil {
				return
			}
			results[slot], _ = lazy.Read(r, RawPayload)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, []byte{7, 8, 9}, got)
	}
}

func TestLazy_NilReaderWithoutStagedBytes(t *testing.T) {
	lazy := LazyFromHeader[[]byte](Header{Tag: MakeTag("BODY"), PayloadSize: 3})
	_, err := lazy.Read(nil, RawPayload)
	require.ErrorIs(t, err, errs.ErrNoPayloadSource)
}

func TestLazy_FromBytes(t *testing.T) {
	src := []byte{4, 5, 6}
	lazy := LazyFromBytes[[]byte](src)
	require.True(t, lazy.IsStaged())
	require.Equal(t, uint32(3), lazy.Header().PayloadSize)

	src[0] = 0xFF // callers mutating their slice must not affect the Lazy

	got, err := lazy.Read(nil, RawPayload)
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5, 6}, got)
}

func TestLazy_StagedRecordDecode(t *testing.T) {
	// Staged bytes can hold nested chunks; Read decodes them with the
	// supplied decode function.
	payload := clipChunk("CLIP", 42)
	lazy := LazyFromBytes[clipRecord](payload)

	clip, err := lazy.Read(nil, func(r *Reader, h Header) (clipRecord, error) {
		children, err := r.Children(Header{PayloadSize: h.PayloadSize})
		if err != nil {
			return clipRecord{}, err
		}
		var c clipRecord
		err = DecodeRecord(r, children[0], &c)

		return c, err
	})
	require.NoError(t, err)
	require.Equal(t, uint32(42), clip.Rounds)
}
