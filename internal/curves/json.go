package curves

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abrowley/rateslib/internal/dual"
)

const curveFormatVersion = 1

// Wire format for a Curve. Collaborator objects are externally owned and
// serialize by name only; ImportCurve re-attaches them.
type curveJSON struct {
	Version       int        `json:"version"`
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Interpolation string     `json:"interpolation"`
	ADOrder       int        `json:"ad"`
	Convention    string     `json:"convention"`
	Modifier      string     `json:"modifier,omitempty"`
	Nodes         []nodeJSON `json:"nodes"`
}

type nodeJSON struct {
	Date  string          `json:"date"` // RFC 3339 date
	Value json.RawMessage `json:"value"`
}

const dateLayout = "2006-01-02"

// MarshalJSON implements json.Marshaler.
func (c *Curve) MarshalJSON() ([]byte, error) {
	out := curveJSON{
		Version:       curveFormatVersion,
		ID:            c.params.ID,
		Type:          c.params.Type.String(),
		Interpolation: c.params.Interpolation.String(),
		ADOrder:       c.params.ADOrder,
		Convention:    c.params.Convention.Name(),
		Modifier:      c.params.Modifier,
		Nodes:         make([]nodeJSON, len(c.dates)),
	}
	for i, d := range c.dates {
		enc, err := dual.MarshalNumber(c.values[i])
		if err != nil {
			return nil, fmt.Errorf("encoding node %d: %w", i, err)
		}
		out.Nodes[i] = nodeJSON{Date: d.Format(dateLayout), Value: enc}
	}
	return json.Marshal(out)
}

// ImportOptions re-attaches the externally owned collaborators on import.
// A nil Convention falls back to Act365Fixed when the encoded convention
// name matches, and fails otherwise.
type ImportOptions struct {
	Calendar   Calendar
	Convention DayCounter
}

// ImportCurve decodes a curve previously encoded by MarshalJSON. The result
// is equal by value to the exported curve.
func ImportCurve(data []byte, opts ImportOptions) (*Curve, error) {
	var raw curveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding curve: %w", err)
	}
	if raw.Version != curveFormatVersion {
		return nil, fmt.Errorf("curve format version %d not supported: %w", raw.Version, dual.ErrDomain)
	}

	interp, err := ParseInterpolation(raw.Interpolation)
	if err != nil {
		return nil, err
	}
	var ctype CurveType
	switch raw.Type {
	case curveTypeNames[CurveTypeDF]:
		ctype = CurveTypeDF
	case curveTypeNames[CurveTypeValues]:
		ctype = CurveTypeValues
	default:
		return nil, fmt.Errorf("unknown curve type %q: %w", raw.Type, dual.ErrDomain)
	}

	conv := opts.Convention
	if conv == nil {
		if raw.Convention != (Act365Fixed{}).Name() {
			return nil, fmt.Errorf("no day counter supplied for convention %q: %w", raw.Convention, dual.ErrDomain)
		}
		conv = Act365Fixed{}
	} else if conv.Name() != raw.Convention {
		return nil, fmt.Errorf("day counter %q does not match encoded convention %q: %w",
			conv.Name(), raw.Convention, dual.ErrDomain)
	}

	nodes := make(map[time.Time]dual.Number, len(raw.Nodes))
	for i, n := range raw.Nodes {
		date, err := time.Parse(dateLayout, n.Date)
		if err != nil {
			return nil, fmt.Errorf("node %d date: %w", i, err)
		}
		value, err := dual.UnmarshalNumber(n.Value)
		if err != nil {
			return nil, fmt.Errorf("node %d value: %w", i, err)
		}
		nodes[date] = value
	}

	return NewCurve(nodes, CurveParams{
		Interpolation: interp,
		Type:          ctype,
		ID:            raw.ID,
		Calendar:      opts.Calendar,
		Convention:    conv,
		Modifier:      raw.Modifier,
		ADOrder:       raw.ADOrder,
	})
}
