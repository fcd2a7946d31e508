package format

import (
	"github.com/arloliu/munge/node"
)

// TagScript is the chunk tag of a script record.
var TagScript = node.MakeTag("scr_")

// ScriptClass classifies where a script runs.
type ScriptClass uint8

const (
	// ScriptClassCommon scripts are loaded for every mode.
	ScriptClassCommon ScriptClass = 0
	// ScriptClassMission scripts drive a single mission setup.
	ScriptClassMission ScriptClass = 1
	// ScriptClassShell scripts run the front-end menus.
	ScriptClassShell ScriptClass = 2
)

// Valid reports whether the discriminant has a defined variant.
func (c ScriptClass) Valid() bool {
	return c <= ScriptClassShell
}

func (c ScriptClass) String() string {
	switch c {
	case ScriptClassCommon:
		return "Common"
	case ScriptClassMission:
		return "Mission"
	case ScriptClassShell:
		return "Shell"
	default:
		return "Unknown"
	}
}

// Script is a compiled script resource: a name, a class byte, and the
// bytecode payload. The bytecode is deferred; call Data to read it.
type Script struct {
	Name  string
	Class ScriptClass
	Body  node.Lazy[[]byte]
}

// Fields describes the script chunk layout.
func (s *Script) Fields() []node.Field {
	return []node.Field{
		node.CString("name", node.MakeTag("NAME"), &s.Name),
		node.Enum("class", node.MakeTag("INFO"), &s.Class, ScriptClass.Valid),
		node.LazyRaw("body", node.MakeTag("BODY"), &s.Body),
	}
}

// Data reads the script's bytecode from r.
func (s *Script) Data(r *node.Reader) ([]byte, error) {
	return s.Body.Read(r, node.RawPayload)
}

// DecodeScript decodes the script record described by h.
func DecodeScript(r *node.Reader, h node.Header) (*Script, error) {
	var s Script
	if err := node.DecodeRecord(r, h, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
