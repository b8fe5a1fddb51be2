package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParticipantForm tags which source shape a Participant was read from.
type ParticipantForm uint8

const (
	// StringForm is a bare email string.
	StringForm ParticipantForm = iota + 1
	// ObjectForm is an object with optional name and email.
	ObjectForm
	// OtherForm is any other JSON value (number, null, array).
	OtherForm
)

// Participant is an enrolled identity. For StringForm the bare string is
// held in Email. Empty Name or Email means the field is absent.
type Participant struct {
	Form  ParticipantForm
	Name  string
	Email string
	// Raw is the participant's JSON as received, used when nothing better
	// can be displayed.
	Raw json.RawMessage
}

// DisplayParticipant is a participant normalized for rendering. Email is
// the deletion key; an empty Email means the participant cannot be removed.
type DisplayParticipant struct {
	Display string
	Email   string
}

// HasKey reports whether the participant can be targeted for removal.
func (d DisplayParticipant) HasKey() bool {
	return d.Email != ""
}

// EmailParticipant builds the bare-string form.
func EmailParticipant(email string) Participant {
	return Participant{Form: StringForm, Email: email}
}

// NamedParticipant builds the object form. Either field may be empty.
func NamedParticipant(name, email string) Participant {
	return Participant{Form: ObjectForm, Name: name, Email: email}
}

// Display derives the display string and deletion key:
//
//	"a@x.com"                      -> "a@x.com", key a@x.com
//	{name:"Ana", email:"a@x.com"}  -> "Ana (a@x.com)", key a@x.com
//	{name:"Ana"}                   -> "Ana", no key
//	{email:"b@x.com"}              -> "b@x.com", key b@x.com
//	anything else                  -> its JSON text, no key
func (p Participant) Display() DisplayParticipant {
	switch p.Form {
	case StringForm:
		return DisplayParticipant{Display: p.Email, Email: p.Email}
	case ObjectForm:
		switch {
		case p.Name != "" && p.Email != "":
			return DisplayParticipant{Display: fmt.Sprintf("%s (%s)", p.Name, p.Email), Email: p.Email}
		case p.Name != "":
			return DisplayParticipant{Display: p.Name}
		case p.Email != "":
			return DisplayParticipant{Display: p.Email, Email: p.Email}
		default:
			return DisplayParticipant{Display: p.stringify()}
		}
	default: // OtherForm
		return DisplayParticipant{Display: p.stringify()}
	}
}

func (p Participant) stringify() string {
	raw := p.Raw
	if len(raw) == 0 {
		var err error
		if raw, err = json.Marshal(p); err != nil {
			return fmt.Sprint(p.Name, p.Email)
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// UnmarshalJSON reads any JSON value into the matching form. Non-string
// name or email values are treated as absent.
func (p *Participant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = Participant{Raw: append(json.RawMessage(nil), data...)}
	if len(data) == 0 {
		p.Form = OtherForm
		return nil
	}

	switch data[0] {
	case '"':
		p.Form = StringForm
		return json.Unmarshal(data, &p.Email)
	case '{':
		p.Form = ObjectForm
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		p.Name = stringField(fields["name"])
		p.Email = stringField(fields["email"])
		return nil
	default:
		p.Form = OtherForm
		return nil
	}
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// MarshalJSON writes the participant back in its source shape.
func (p Participant) MarshalJSON() ([]byte, error) {
	switch p.Form {
	case StringForm:
		return json.Marshal(p.Email)
	case ObjectForm:
		if len(p.Raw) > 0 {
			return p.Raw, nil
		}
		return json.Marshal(struct {
			Name  string `json:"name,omitempty"`
			Email string `json:"email,omitempty"`
		}{p.Name, p.Email})
	default:
		if len(p.Raw) == 0 {
			return []byte("null"), nil
		}
		return p.Raw, nil
	}
}
