package format

import (
	"fmt"

	"github.com/arloliu/munge/endian"
	"github.com/arloliu/munge/node"
	"github.com/arloliu/munge/packed"
)

// TagTexture is the chunk tag of a texture record.
var TagTexture = node.MakeTag("tex_")

// SurfaceInfoSize is the packed size of a SurfaceInfo leaf payload.
const SurfaceInfoSize = 16

// SurfaceInfo is the fixed packed descriptor inside a texture format
// block: pixel format, dimensions, and mip chain length. The Unknown field
// is carried verbatim; its meaning in the original data is unresolved.
type SurfaceInfo struct {
	Format   uint32
	Width    uint16
	Height   uint16
	Unknown  uint16
	MipCount uint16
	Kind     uint32
}

// Parse decodes the packed descriptor from a leaf payload.
func (si *SurfaceInfo) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < SurfaceInfoSize {
		return fmt.Errorf("surface info needs %d bytes, have %d", SurfaceInfoSize, len(data))
	}

	si.Format = engine.Uint32(data[0:4])
	si.Width = engine.Uint16(data[4:6])
	si.Height = engine.Uint16(data[6:8])
	si.Unknown = engine.Uint16(data[8:10])
	si.MipCount = engine.Uint16(data[10:12])
	si.Kind = engine.Uint32(data[12:16])

	return nil
}

// MipLevel is one mip surface; the pixel data is deferred.
type MipLevel struct {
	Body node.Lazy[[]byte]
}

// Fields describes the mip level chunk layout.
func (m *MipLevel) Fields() []node.Field {
	return []node.Field{
		node.LazyRaw("body", node.MakeTag("BODY"), &m.Body),
	}
}

// TextureFace is one face of a texture (six for cube maps, one otherwise),
// holding its mip chain in stream order.
type TextureFace struct {
	Levels []node.Element[MipLevel]
}

// Fields describes the face chunk layout.
func (f *TextureFace) Fields() []node.Field {
	return []node.Field{
		node.Repeated[MipLevel]("levels", "LVL_", &f.Levels),
	}
}

// TextureFormat is one encoding of a texture: a packed SurfaceInfo
// descriptor plus the faces carrying the actual surfaces.
type TextureFormat struct {
	Info  SurfaceInfo
	Faces []node.Element[TextureFace]
}

// Fields describes the format block layout. INFO is a packed multi-field
// leaf, so it binds through a custom codec rather than a scalar helper.
func (tf *TextureFormat) Fields() []node.Field {
	return []node.Field{
		node.Custom("info", node.MakeTag("INFO"),
			func(r *node.Reader, h node.Header) error {
				payload, err := r.Payload(h)
				if err != nil {
					return err
				}

				return tf.Info.Parse(payload, r.Engine())
			},
			func(w *node.Writer) error {
				engine := w.Engine()
				buf := make([]byte, 0, SurfaceInfoSize)
				buf = packed.AppendUint32(buf, engine, tf.Info.Format)
				buf = packed.AppendUint16(buf, engine, tf.Info.Width)
				buf = packed.AppendUint16(buf, engine, tf.Info.Height)
				buf = packed.AppendUint16(buf, engine, tf.Info.Unknown)
				buf = packed.AppendUint16(buf, engine, tf.Info.MipCount)
				buf = packed.AppendUint32(buf, engine, tf.Info.Kind)

				return w.Raw(node.MakeTag("INFO"), buf)
			},
		),
		node.Repeated[TextureFace]("faces", "FACE", &tf.Faces),
	}
}

// Texture is a texture resource: a name plus one block per available
// encoding, each holding faces and mip levels with deferred pixel data.
type Texture struct {
	Name    string
	Formats []node.Element[TextureFormat]
}

// Fields describes the texture chunk layout.
func (t *Texture) Fields() []node.Field {
	return []node.Field{
		node.CString("name", node.MakeTag("NAME"), &t.Name),
		node.Repeated[TextureFormat]("formats", "FMT_", &t.Formats),
	}
}

// DecodeTexture decodes the texture record described by h.
func DecodeTexture(r *node.Reader, h node.Header) (*Texture, error) {
	var t Texture
	if err := node.DecodeRecord(r, h, &t); err != nil {
		return nil, err
	}

	return &t, nil
}
