package splines

import (
	"encoding/json"
	"fmt"

	"github.com/abrowley/rateslib/internal/dual"
)

// Wire format for a PPSpline. Round-trips to an equal-by-value instance.
type splineJSON struct {
	Version int               `json:"version"`
	K       int               `json:"k"`
	T       []float64         `json:"t"`
	C       []json.RawMessage `json:"c,omitempty"`
}

const splineFormatVersion = 1

// MarshalJSON implements json.Marshaler.
func (s *PPSpline[T]) MarshalJSON() ([]byte, error) {
	out := splineJSON{Version: splineFormatVersion, K: s.k, T: s.t}
	if s.c != nil {
		out.C = make([]json.RawMessage, len(s.c))
		for i, ci := range s.c {
			enc, err := dual.MarshalNumber(ci.Number())
			if err != nil {
				return nil, fmt.Errorf("encoding coefficient %d: %w", i, err)
			}
			out.C[i] = enc
		}
	}
	return json.Marshal(out)
}

// ImportPPSpline decodes a spline previously encoded by MarshalJSON. The
// element type must match the encoded coefficients' AD order.
func ImportPPSpline[T Num[T]](data []byte) (*PPSpline[T], error) {
	var raw splineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding spline: %w", err)
	}
	if raw.Version != splineFormatVersion {
		return nil, fmt.Errorf("spline format version %d not supported: %w", raw.Version, dual.ErrDomain)
	}
	var c []T
	if raw.C != nil {
		c = make([]T, len(raw.C))
		for i, enc := range raw.C {
			n, err := dual.UnmarshalNumber(enc)
			if err != nil {
				return nil, fmt.Errorf("decoding coefficient %d: %w", i, err)
			}
			elem, err := elemFromNumber[T](n)
			if err != nil {
				return nil, fmt.Errorf("coefficient %d: %w", i, err)
			}
			c[i] = elem
		}
	}
	return NewPPSpline[T](raw.K, raw.T, c)
}

// elemFromNumber converts a decoded Number into the spline element type.
func elemFromNumber[T Num[T]](n dual.Number) (T, error) {
	var z T
	switch p := any(&z).(type) {
	case *dual.Real:
		v, ok := n.(dual.Real)
		if !ok {
			return z, fmt.Errorf("expected order 0 coefficient, got order %d: %w", n.Order(), dual.ErrDimensionMismatch)
		}
		*p = v
	case **dual.Dual:
		v, ok := n.(*dual.Dual)
		if !ok {
			return z, fmt.Errorf("expected order 1 coefficient, got order %d: %w", n.Order(), dual.ErrDimensionMismatch)
		}
		*p = v
	case **dual.Dual2:
		v, ok := n.(*dual.Dual2)
		if !ok {
			return z, fmt.Errorf("expected order 2 coefficient, got order %d: %w", n.Order(), dual.ErrDimensionMismatch)
		}
		*p = v
	default:
		return z, fmt.Errorf("unsupported element type %T: %w", z, dual.ErrDomain)
	}
	return z, nil
}
