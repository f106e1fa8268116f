package controller

import (
	"reflect"
	"testing"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
)

func TestEventCodec(t *testing.T) {
	events := []Event{
		PointerDown{X: 1.5, Y: 2, Button: ButtonMiddle, PanModifier: true},
		PointerMove{X: 3, Y: 4},
		PointerUp{X: 5, Y: 6},
		Wheel{DeltaY: -120},
		Key{Key: "z", Ctrl: true, Shift: true},
		SelectTool{Tool: ToolSticky},
		SetStyle{Color: "#ff0000", StrokeWidth: 4},
		TextChanged{Text: "hello\nworld"},
		TextCommit{},
		ImageChosen{DataURL: "data:image/png;base64,AAAA", Width: 10, Height: 20},
		ClearAll{},
		SetCanvas{Config: board.DefaultCanvas()},
		ApplyPreset{Name: "hd"},
		Resize{Width: 800, Height: 600},
		Load{},
	}
	for _, ev := range events {
		data, err := EncodeEvent(ev)
		if err != nil {
			t.Fatalf("encode %T: %v", ev, err)
		}
		got, err := DecodeEvent(data)
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if !reflect.DeepEqual(got, ev) {
			t.Errorf("round trip %s: got %#v, want %#v", data, got, ev)
		}
	}
}

func TestEncodeEmptyEvent(t *testing.T) {
	data, err := EncodeEvent(Undo{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"undo"}` {
		t.Errorf("got %s", data)
	}
}

func TestDecodeEvents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Event
		wantErr bool
	}{
		{
			name:  "single",
			input: `{"type":"pointerdown","x":10,"y":20}`,
			want:  []Event{PointerDown{X: 10, Y: 20}},
		},
		{
			name:  "list",
			input: ` [{"type":"tool","tool":"rect"},{"type":"redo"}]`,
			want:  []Event{SelectTool{Tool: ToolRect}, Redo{}},
		},
		{name: "unknown type", input: `{"type":"teleport"}`, wantErr: true},
		{name: "missing type", input: `{"x":1}`, wantErr: true},
		{name: "bad json", input: `{"type":`, wantErr: true},
		{name: "bad field", input: `{"type":"wheel","deltaY":"up"}`, wantErr: true},
		{name: "bad list item", input: `[{"type":"undo"},{"type":"nope"}]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvents([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidEvent) {
					t.Errorf("err = %v, want INVALID_EVENT", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToolShortcuts(t *testing.T) {
	for _, tool := range Tools {
		k := ShortcutFor(tool)
		if k == "" {
			t.Errorf("tool %q has no shortcut", tool)
			continue
		}
		if toolKeys[k] != tool {
			t.Errorf("shortcut %q maps to %q, want %q", k, toolKeys[k], tool)
		}
	}
	if Tool("laser").Valid() {
		t.Error("unknown tool reported valid")
	}
}
