package artifact

import (
	"encoding/json"
	"fmt"
)

// Wire names of the known delta types. The set is open: anything else
// decodes to UnknownDelta and folds as a no-op.
const (
	TypeID    = "id"
	TypeTitle = "title"
	TypeKind  = "kind"
	TypeText  = "text-delta"
	TypeClear = "clear"
	TypeFinal = "finish"
)

// Delta is one typed stream event. The concrete types below are the closed
// set the engine understands.
type Delta interface {
	deltaType() string
}

// IDDelta assigns the document id of the in-flight generation.
type IDDelta struct{ Data string }

// TitleDelta assigns the artifact title.
type TitleDelta struct{ Data string }

// KindDelta assigns the artifact content kind.
type KindDelta struct{ Data string }

// TextDelta appends a content fragment.
type TextDelta struct{ Data string }

// ClearDelta restarts content accumulation for the same document id.
type ClearDelta struct{}

// FinishDelta terminates the generation and triggers persistence.
type FinishDelta struct{}

// UnknownDelta carries a delta type the engine does not understand. It folds
// as a no-op so new stream event kinds fail closed.
type UnknownDelta struct {
	Type string
	Data json.RawMessage
}

func (IDDelta) deltaType() string      { return TypeID }
func (TitleDelta) deltaType() string   { return TypeTitle }
func (KindDelta) deltaType() string    { return TypeKind }
func (TextDelta) deltaType() string    { return TypeText }
func (ClearDelta) deltaType() string   { return TypeClear }
func (FinishDelta) deltaType() string  { return TypeFinal }
func (d UnknownDelta) deltaType() string { return d.Type }

type wireDelta struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeDelta parses one `{type, data}` event from the stream. Unrecognized
// types decode successfully into UnknownDelta; a payload of the wrong shape
// for a known type is an error.
func DecodeDelta(raw []byte) (Delta, error) {
	var w wireDelta
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to decode delta: %w", err)
	}

	str := func() (string, error) {
		var s string
		if err := json.Unmarshal(w.Data, &s); err != nil {
			return "", fmt.Errorf("failed to decode %s delta payload: %w", w.Type, err)
		}
		return s, nil
	}

	switch w.Type {
	case TypeID:
		s, err := str()
		if err != nil {
			return nil, err
		}
		return IDDelta{Data: s}, nil
	case TypeTitle:
		s, err := str()
		if err != nil {
			return nil, err
		}
		return TitleDelta{Data: s}, nil
	case TypeKind:
		s, err := str()
		if err != nil {
			return nil, err
		}
		return KindDelta{Data: s}, nil
	case TypeText:
		s, err := str()
		if err != nil {
			return nil, err
		}
		return TextDelta{Data: s}, nil
	case TypeClear:
		return ClearDelta{}, nil
	case TypeFinal:
		return FinishDelta{}, nil
	default:
		return UnknownDelta{Type: w.Type, Data: w.Data}, nil
	}
}
