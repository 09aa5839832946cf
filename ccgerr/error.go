package ccgerr

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
)

// Errors gathers the invariant violations of many productions, e.g. every
// failed entry of a grammar file. The nil *Errors is empty and ready to use.
type Errors struct {
	errs []CCGError
}

func (r *Errors) With(err ...CCGError) *Errors {
	if len(err) == 0 {
		return r
	}
	if r == nil {
		r = &Errors{}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Errors() []CCGError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool { return len(r.Errors()) > 0 }

// Codes counts the violations per ErrCode
func (r *Errors) Codes() map[ErrCode]int {
	codes := make(map[ErrCode]int)
	for _, e := range r.Errors() {
		codes[e.Code()]++
	}
	return codes
}

func (r *Errors) LogValue() slog.Value {
	errs := r.Errors()
	msgs := make([]slog.Attr, len(errs))
	for i, e := range errs {
		msgs[i] = slog.String(strconv.Itoa(i), FormatWithCode(e))
	}
	codes := r.Codes()
	byCode := make([]slog.Attr, 0, len(codes))
	for _, c := range slices.Sorted(maps.Keys(codes)) {
		byCode = append(byCode, slog.Int(fmt.Sprintf("E%03d", c), codes[c]))
	}
	return slog.GroupValue(
		slog.Int("count", len(errs)),
		slog.Attr{Key: "codes", Value: slog.GroupValue(byCode...)},
		slog.Attr{Key: "errors", Value: slog.GroupValue(msgs...)},
	)
}
