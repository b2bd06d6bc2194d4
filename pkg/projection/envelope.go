package projection

import (
	"github.com/tidwall/sjson"
)

// CommitEnvelope renders the commit request body for p:
//
//	{"formJson":{"isDirty":<bool>,"current":<record>,"original":<record|null>}}
//
// It is a pure function of p's state and performs no validation.
func CommitEnvelope(p *Projection) ([]byte, error) {
	current, err := p.current.MarshalJSON()
	if err != nil {
		return nil, err
	}
	original, err := p.original.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetBytes(nil, "formJson.isDirty", p.dirty)
	if err != nil {
		return nil, err
	}
	out, err = sjson.SetRawBytes(out, "formJson.current", current)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(out, "formJson.original", original)
}
