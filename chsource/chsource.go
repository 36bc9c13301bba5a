// Package chsource loads a Signal from a github.com/invertedv/chutils
// tabular reader (e.g. a ClickHouse query result). It reads every row
// into memory in one pass; there is no batching, since a change-point
// signal needs its full length before detection can run.
package chsource

import (
	"fmt"
	"io"
	"strconv"

	"github.com/invertedv/chutils"

	cp "github.com/invertedv/changepoint"
)

// Load reads every row of rdr and returns a Signal with one dimension per
// requested field, in the order given. Each field's values are coerced to
// float64 (the library's only numeric representation); a field that
// cannot be coerced for some row fails the whole load.
func Load(rdr chutils.Input, fields []string) (cp.Signal, error) {
	const op = "chsource.Load"

	if rdr == nil {
		return cp.Signal{}, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, 0, nil)
	}
	if len(fields) == 0 {
		return cp.Signal{}, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, 0, nil)
	}

	nRow, err := rdr.CountLines()
	if err != nil {
		return cp.Signal{}, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, 0, err)
	}

	fds := rdr.TableSpec().FieldDefs
	colIndex := make(map[string]int, len(fds))
	for i, fd := range fds {
		colIndex[fd.Name] = i
	}

	cols := make([]int, len(fields))
	for i, f := range fields {
		idx, ok := colIndex[f]
		if !ok {
			return cp.Signal{}, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, 0, fmt.Errorf("chsource: no such field: %s", f))
		}
		cols[i] = idx
	}

	data := make([][]float64, len(fields))
	for d := range data {
		data[d] = make([]float64, 0, nRow)
	}

	for row := 0; ; row++ {
		r, _, err := rdr.Read(1, true)
		if err == io.EOF {
			break
		}
		if err != nil {
			return cp.Signal{}, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(row), err)
		}

		for d, col := range cols {
			v, err := toFloat(r[0][col])
			if err != nil {
				return cp.Signal{}, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(row), err)
			}

			data[d] = append(data[d], v)
		}
	}

	return cp.Signal{Data: data}, nil
}

// toFloat coerces a chutils row value (any numeric Go kind, or a numeric
// string) to float64.
func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("chsource: value %q is not numeric", t)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("chsource: unsupported value type %T", v)
	}
}
