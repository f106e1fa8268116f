package controller

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/sketchboard/pkg/errors"
)

// eventFactories builds an empty event for every wire type.
var eventFactories = map[string]func() Event{
	"pointerdown": func() Event { return &PointerDown{} },
	"pointermove": func() Event { return &PointerMove{} },
	"pointerup":   func() Event { return &PointerUp{} },
	"wheel":       func() Event { return &Wheel{} },
	"key":         func() Event { return &Key{} },
	"tool":        func() Event { return &SelectTool{} },
	"style":       func() Event { return &SetStyle{} },
	"text":        func() Event { return &TextChanged{} },
	"textcommit":  func() Event { return &TextCommit{} },
	"textcancel":  func() Event { return &TextCancel{} },
	"image":       func() Event { return &ImageChosen{} },
	"imagecancel": func() Event { return &ImageCancel{} },
	"delete":      func() Event { return &DeleteSelection{} },
	"clear":       func() Event { return &ClearAll{} },
	"undo":        func() Event { return &Undo{} },
	"redo":        func() Event { return &Redo{} },
	"canvas":      func() Event { return &SetCanvas{} },
	"preset":      func() Event { return &ApplyPreset{} },
	"panel":       func() Event { return &TogglePanel{} },
	"resize":      func() Event { return &Resize{} },
	"save":        func() Event { return &Save{} },
	"load":        func() Event { return &Load{} },
}

// EncodeEvent serializes ev as a JSON object with a "type" tag next to
// the event's own fields.
func EncodeEvent(ev Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	tag, _ := json.Marshal(ev.eventType())
	if bytes.Equal(body, []byte("{}")) {
		return []byte(`{"type":` + string(tag) + `}`), nil
	}
	out := append([]byte(`{"type":`+string(tag)+`,`), body[1:]...)
	return out, nil
}

// DecodeEvent parses one JSON event.
func DecodeEvent(data []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "parse event")
	}
	factory, ok := eventFactories[head.Type]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", head.Type)
	}
	ptr := factory()
	if err := json.Unmarshal(data, ptr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "parse %s event", head.Type)
	}
	return deref(ptr), nil
}

// DecodeEvents parses either one event object or an array of them.
func DecodeEvents(data []byte) ([]Event, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "parse event list")
		}
		out := make([]Event, 0, len(raw))
		for _, r := range raw {
			ev, err := DecodeEvent(r)
			if err != nil {
				return nil, err
			}
			out = append(out, ev)
		}
		return out, nil
	}
	ev, err := DecodeEvent(trimmed)
	if err != nil {
		return nil, err
	}
	return []Event{ev}, nil
}

// deref turns the decoded pointer back into the value type Dispatch
// switches on.
func deref(ev Event) Event {
	switch e := ev.(type) {
	case *PointerDown:
		return *e
	case *PointerMove:
		return *e
	case *PointerUp:
		return *e
	case *Wheel:
		return *e
	case *Key:
		return *e
	case *SelectTool:
		return *e
	case *SetStyle:
		return *e
	case *TextChanged:
		return *e
	case *TextCommit:
		return *e
	case *TextCancel:
		return *e
	case *ImageChosen:
		return *e
	case *ImageCancel:
		return *e
	case *DeleteSelection:
		return *e
	case *ClearAll:
		return *e
	case *Undo:
		return *e
	case *Redo:
		return *e
	case *SetCanvas:
		return *e
	case *ApplyPreset:
		return *e
	case *TogglePanel:
		return *e
	case *Resize:
		return *e
	case *Save:
		return *e
	case *Load:
		return *e
	}
	return ev
}
