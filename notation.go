package typemap

import (
	"encoding/json"
	"strings"
)

// Pseudo-types used where no concrete type name is available.
const (
	TypeUnknown          = "unknown"
	TypeInstance         = "instance"
	TypeInterfaceLiteral = "interfaceliteral"
)

// Notation discriminants written to the "type" field of the mapping file.
const (
	NotationClass       = "class"
	NotationEnumeration = "enumeration"
	NotationNamespace   = "namespace"
	NotationFunction    = "function"
	NotationDelegate    = "delegate"
	NotationEvent       = "event"
	NotationStructure   = "structure"
)

// Notation is the normalized description of one documented symbol.
// The set of implementations is closed: *TypeNotation, *FunctionNotation,
// *DelegateNotation, *EventNotation, *StructureNotation and *NamespaceNotation.
type Notation interface {
	// NotationType returns the discriminant written to the "type" field.
	NotationType() string

	notation()
}

// TypeNotation describes any non-callable, non-event symbol: classes,
// enumerations and primitive-typed properties or enumeration members.
// Type is a primitive name, a fully-qualified identifier or a pseudo-type.
type TypeNotation struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (n *TypeNotation) NotationType() string { return n.Type }
func (*TypeNotation) notation()              {}

// FunctionNotation collects one signature per overload. Several documents
// may contribute signatures to the same entry.
type FunctionNotation struct {
	Signatures []*Signature
}

func (*FunctionNotation) NotationType() string { return NotationFunction }
func (*FunctionNotation) notation()            {}

// DelegateNotation describes a delegate type. Delegates are never overloaded.
type DelegateNotation struct {
	Description string
	Signature   *Signature
}

func (*DelegateNotation) NotationType() string { return NotationDelegate }
func (*DelegateNotation) notation()            {}

// EventNotation describes an event. Delegate references the handler's
// delegate type by identifier.
type EventNotation struct {
	Description string
	Delegate    string
}

func (*EventNotation) NotationType() string { return NotationEvent }
func (*EventNotation) notation()            {}

// StructureNotation describes a value structure by its ordered fields.
type StructureNotation struct {
	Description string
	Members     []Parameter
}

func (*StructureNotation) NotationType() string { return NotationStructure }
func (*StructureNotation) notation()            {}

// NamespaceNotation describes a namespace together with the child symbols
// that are only discoverable through the namespace page.
type NamespaceNotation struct {
	Description string
	Members     NamespaceMembers
}

func (*NamespaceNotation) NotationType() string { return NotationNamespace }
func (*NamespaceNotation) notation()            {}

// NamespaceMembers lists identifier references declared by a namespace.
type NamespaceMembers struct {
	Structures []string `json:"structures"`
	Delegates  []string `json:"delegates"`
}

// MarshalJSON encodes nil lists as empty arrays.
func (m NamespaceMembers) MarshalJSON() ([]byte, error) {
	type members NamespaceMembers
	out := members(m)
	if out.Structures == nil {
		out.Structures = []string{}
	}
	if out.Delegates == nil {
		out.Delegates = []string{}
	}
	return json.Marshal(out)
}

// Signature is one callable overload.
type Signature struct {
	Description    string      `json:"description"`
	Parameters     []Parameter `json:"parameters"`
	TypeParameters []string    `json:"typeParameters,omitempty"`
	Return         *Return     `json:"return,omitempty"`
	CodeSnippet    string      `json:"codeSnippet,omitempty"`
}

// MarshalJSON always writes the parameter list, even when it is empty.
func (s Signature) MarshalJSON() ([]byte, error) {
	type signature Signature
	out := signature(s)
	if out.Parameters == nil {
		out.Parameters = []Parameter{}
	}
	return json.Marshal(out)
}

// Parameter is one positional parameter or structure field.
type Parameter struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Return is either the constructor sentinel "instance" or a typed value.
type Return struct {
	Instance bool
	Value    TypeNotation
}

// InstanceReturn returns the return value used by constructors.
func InstanceReturn() *Return {
	return &Return{Instance: true}
}

// MarshalJSON encodes the constructor sentinel as the bare string "instance".
func (r Return) MarshalJSON() ([]byte, error) {
	if r.Instance {
		return json.Marshal(TypeInstance)
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts either "instance" or a type notation object.
func (r *Return) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != TypeInstance {
			return Errorf(EINVALID, "unexpected return sentinel %q", s)
		}
		*r = Return{Instance: true}
		return nil
	}
	var v TypeNotation
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Return{Value: v}
	return nil
}

// Entry is a notation stored under a lookup key. Key is the lowercased
// fully-qualified identifier; CamelID keeps the identifier's original casing.
type Entry struct {
	Key      string
	CamelID  string
	Notation Notation
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Key == "" {
		return Errorf(EINVALID, "entry key required")
	}
	if e.Key != strings.ToLower(e.Key) {
		return Errorf(EINVALID, "entry key %q must be lowercase", e.Key)
	}
	if e.Notation == nil {
		return Errorf(EINVALID, "entry %q has no notation", e.Key)
	}
	return nil
}

// entryJSON is the flat wire form shared by every notation variant.
type entryJSON struct {
	Key         string          `json:"key,omitempty"`
	CamelID     string          `json:"camelId"`
	Type        string          `json:"type"`
	Description *string         `json:"description,omitempty"`
	Signatures  *[]*Signature   `json:"signatures,omitempty"`
	Signature   *Signature      `json:"signature,omitempty"`
	Delegate    string          `json:"delegate,omitempty"`
	Members     json.RawMessage `json:"members,omitempty"`
}

// MarshalJSON encodes the entry as a flat object discriminated by "type".
func (e Entry) MarshalJSON() ([]byte, error) {
	raw := entryJSON{Key: e.Key, CamelID: e.CamelID}

	switch n := e.Notation.(type) {
	case *TypeNotation:
		raw.Type = n.Type
		raw.Description = &n.Description
	case *FunctionNotation:
		sigs := n.Signatures
		if sigs == nil {
			sigs = []*Signature{}
		}
		raw.Type = NotationFunction
		raw.Signatures = &sigs
	case *DelegateNotation:
		raw.Type = NotationDelegate
		raw.Description = &n.Description
		raw.Signature = n.Signature
	case *EventNotation:
		raw.Type = NotationEvent
		raw.Description = &n.Description
		raw.Delegate = n.Delegate
	case *StructureNotation:
		members := n.Members
		if members == nil {
			members = []Parameter{}
		}
		buf, err := json.Marshal(members)
		if err != nil {
			return nil, err
		}
		raw.Type = NotationStructure
		raw.Description = &n.Description
		raw.Members = buf
	case *NamespaceNotation:
		buf, err := json.Marshal(n.Members)
		if err != nil {
			return nil, err
		}
		raw.Type = NotationNamespace
		raw.Description = &n.Description
		raw.Members = buf
	case nil:
		return nil, Errorf(EINVALID, "entry %q has no notation", e.Key)
	default:
		return nil, Errorf(EINTERNAL, "unsupported notation %T", n)
	}

	return json.Marshal(raw)
}

// UnmarshalJSON decodes the flat wire form, dispatching on "type".
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var desc string
	if raw.Description != nil {
		desc = *raw.Description
	}

	var n Notation
	switch raw.Type {
	case "":
		return Errorf(EINVALID, "entry %q has no type", raw.CamelID)
	case NotationFunction:
		fn := &FunctionNotation{}
		if raw.Signatures != nil {
			fn.Signatures = *raw.Signatures
		}
		n = fn
	case NotationDelegate:
		if raw.Signature == nil {
			return Errorf(EINVALID, "delegate %q has no signature", raw.CamelID)
		}
		n = &DelegateNotation{Description: desc, Signature: raw.Signature}
	case NotationEvent:
		n = &EventNotation{Description: desc, Delegate: raw.Delegate}
	case NotationStructure:
		st := &StructureNotation{Description: desc, Members: []Parameter{}}
		if len(raw.Members) > 0 {
			if err := json.Unmarshal(raw.Members, &st.Members); err != nil {
				return err
			}
		}
		n = st
	case NotationNamespace:
		ns := &NamespaceNotation{Description: desc}
		if len(raw.Members) > 0 {
			if err := json.Unmarshal(raw.Members, &ns.Members); err != nil {
				return err
			}
		}
		n = ns
	default:
		n = &TypeNotation{Description: desc, Type: raw.Type}
	}

	*e = Entry{Key: raw.Key, CamelID: raw.CamelID, Notation: n}
	return nil
}
