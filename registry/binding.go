package registry

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

const displayWidth = 30

// Params is the ordered list of values bound to a query. A nil Params on a
// binding matches any parameters; a non-nil one, even empty, matches only an
// equal list.
type Params []any

// Binding is one registered query/response pair.
type Binding struct {
	// ID is the opaque handle used for removal and replay.
	ID int64

	// Query is matched exactly against executed query text.
	Query string

	// Params narrows the binding to one parameter list. Nil is a wildcard.
	Params Params

	// Payload is returned verbatim by fetches.
	Payload Payload

	// Ephemeral bindings are removed the first time they are matched.
	Ephemeral bool

	// PageSize, when positive, overrides every page size passed to incremental fetches.
	PageSize int
}

// String renders a short, truncated description of the binding.
func (b *Binding) String() string {
	var sb strings.Builder
	if b.Ephemeral {
		sb.WriteString("EphemeralBinding: ")
	} else {
		sb.WriteString("Binding: ")
	}
	sb.WriteString(truncate(b.Query))
	if len(b.Params) > 0 {
		sb.WriteString(" + ")
		sb.WriteString(truncate(fmt.Sprint([]any(b.Params))))
	}
	sb.WriteString(" -> ")
	sb.WriteString(truncate(fmt.Sprint(b.Payload)))
	return sb.String()
}

func (b *Binding) matches(query string, params Params) bool {
	return b.Query == query && ParamsEqual(b.Params, params)
}

func truncate(s string) string {
	if len(s) > displayWidth {
		return s[:displayWidth] + "..."
	}
	return s
}

// ParamsEqual compares two parameter lists element by element. Nil equals only
// nil. Numbers compare by value across Go numeric kinds and decimal.Decimal;
// everything else uses reflect.DeepEqual.
func ParamsEqual(a, b Params) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	da, aNum := toDecimal(a)
	db, bNum := toDecimal(b)
	if aNum && bNum {
		return da.Equal(db)
	}
	return reflect.DeepEqual(a, b)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return *n, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), true
		}
		return decimal.NewFromFloat(f), true
	default:
		return decimal.Decimal{}, false
	}
}
