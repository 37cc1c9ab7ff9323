package estimator

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which variant an Outcome holds.
type Kind int

const (
	// KindValue is a finite, non-negative number.
	KindValue Kind = iota
	// KindNotApplicable means the investment is never paid back.
	KindNotApplicable
	// KindNegativeROI means the computed return is negative or non-finite.
	KindNegativeROI
	// KindUndefinedROI means there is no investment to measure a return against.
	KindUndefinedROI
)

var kindNames = map[Kind]string{
	KindValue:         "value",
	KindNotApplicable: "not_applicable",
	KindNegativeROI:   "negative_roi",
	KindUndefinedROI:  "undefined_roi",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown outcome kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// Outcome is either a number or one of the sentinels. It never holds NaN or
// an infinity.
type Outcome struct {
	kind  Kind
	value float64
}

// Value wraps a computed number.
func Value(v float64) Outcome {
	return Outcome{kind: KindValue, value: v}
}

// NotApplicable is the payback sentinel.
func NotApplicable() Outcome {
	return Outcome{kind: KindNotApplicable}
}

// NegativeROI is the ROI sentinel for negative or non-finite returns.
func NegativeROI() Outcome {
	return Outcome{kind: KindNegativeROI}
}

// UndefinedROI is the ROI sentinel for a zero (or negative) three-year investment.
func UndefinedROI() Outcome {
	return Outcome{kind: KindUndefinedROI}
}

// Kind returns the variant held by o.
func (o Outcome) Kind() Kind {
	return o.kind
}

// Float returns the number and true when o holds a value.
func (o Outcome) Float() (float64, bool) {
	if o.kind != KindValue {
		return 0, false
	}
	return o.value, true
}

func (o Outcome) String() string {
	if o.kind == KindValue {
		return fmt.Sprintf("%g", o.value)
	}
	return o.kind.String()
}

type outcomeJSON struct {
	Kind  Kind     `json:"kind"`
	Value *float64 `json:"value,omitempty"`
}

// MarshalJSON encodes o as {"kind": "...", "value": n}, omitting value for sentinels.
func (o Outcome) MarshalJSON() ([]byte, error) {
	payload := outcomeJSON{Kind: o.kind}
	if v, ok := o.Float(); ok {
		payload.Value = &v
	}
	return json.Marshal(payload)
}
