package dual

import (
	"encoding/json"
	"fmt"
)

// Wire format for a Number. Round-trips to an equal-by-value instance.
type numberJSON struct {
	Order int       `json:"order"`
	Real  float64   `json:"real"`
	Vars  []string  `json:"vars,omitempty"`
	Dual  []float64 `json:"dual,omitempty"`
	Dual2 []float64 `json:"dual2,omitempty"` // row-major len(vars)×len(vars)
}

// MarshalNumber encodes n as JSON.
func MarshalNumber(n Number) ([]byte, error) {
	return json.Marshal(encodeNumber(n))
}

func encodeNumber(n Number) numberJSON {
	switch v := n.(type) {
	case *Dual:
		return numberJSON{Order: 1, Real: v.real, Vars: v.vars, Dual: v.dual}
	case *Dual2:
		return numberJSON{Order: 2, Real: v.real, Vars: v.vars, Dual: v.dual, Dual2: v.dual2}
	default:
		return numberJSON{Order: 0, Real: n.Real()}
	}
}

// UnmarshalNumber decodes a Number previously encoded by MarshalNumber.
func UnmarshalNumber(data []byte) (Number, error) {
	var raw numberJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding number: %w", err)
	}
	return decodeNumber(raw)
}

func decodeNumber(raw numberJSON) (Number, error) {
	switch raw.Order {
	case 0:
		return Real(raw.Real), nil
	case 1:
		if raw.Dual == nil {
			raw.Dual = make([]float64, len(raw.Vars))
		}
		return NewDual(raw.Real, raw.Vars, raw.Dual)
	case 2:
		if raw.Dual == nil {
			raw.Dual = make([]float64, len(raw.Vars))
		}
		return NewDual2(raw.Real, raw.Vars, raw.Dual, raw.Dual2)
	default:
		return nil, fmt.Errorf("AD order %d not in {0, 1, 2}: %w", raw.Order, ErrDomain)
	}
}

// MarshalJSON implements json.Marshaler.
func (d *Dual) MarshalJSON() ([]byte, error) { return MarshalNumber(d) }

// MarshalJSON implements json.Marshaler.
func (d *Dual2) MarshalJSON() ([]byte, error) { return MarshalNumber(d) }
