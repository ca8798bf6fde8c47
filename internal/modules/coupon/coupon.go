// Package coupon evaluates the storefront promotional code.
//
// The check runs on the server only to compute display prices and the chat
// message. No order is ever charged from it, so it is a promotional gimmick
// and not an access control: anyone can read the code from the bundle.
package coupon

import (
	"strings"

	"github.com/shopspring/decimal"
)

const InvalidCodeMessage = "Cupom inválido."

// State is the per-view coupon input; it is never persisted.
type State struct {
	Code    string `json:"code"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

type Evaluator struct {
	code    string
	percent int64
}

// New accepts exactly one code granting a flat percentage off.
func New(code string, percent int64) *Evaluator {
	return &Evaluator{code: strings.ToUpper(strings.TrimSpace(code)), percent: percent}
}

func (e *Evaluator) Code() string   { return e.code }
func (e *Evaluator) Percent() int64 { return e.percent }

// Matches compares case-insensitively, ignoring surrounding blanks.
func (e *Evaluator) Matches(code string) bool {
	return e.code != "" && strings.EqualFold(strings.TrimSpace(code), e.code)
}

// Apply evaluates an entered code. A match clears any previous error; a
// mismatch un-applies the coupon and sets the error message.
func (e *Evaluator) Apply(code string) State {
	if e.Matches(code) {
		return State{Code: code, Applied: true}
	}
	return State{Code: code, Applied: false, Error: InvalidCodeMessage}
}

// Price returns the unit price for the coupon state, rounded to cents. The
// reduction is always taken from base, so repeated applies never compound.
func (e *Evaluator) Price(base decimal.Decimal, applied bool) decimal.Decimal {
	if !applied {
		return base
	}
	factor := decimal.NewFromInt(100 - e.percent).Div(decimal.NewFromInt(100))
	return base.Mul(factor).Round(2)
}
