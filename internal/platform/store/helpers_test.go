package store

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	perr "combatlog/internal/platform/errors"
)

type cmdTag string

func (c cmdTag) String() string { return string(c) }
func (c cmdTag) RowsAffected() int64 {
	s := string(c)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type fakeRowQuerier struct {
	lastExecSQL string
	lastExecArg []any
	execTag     CommandTag
	execErr     error

	queryRows Rows
	queryErr  error

	qrRow   Row
	qrErr   error
	qrCalls int
}

func (f *fakeRowQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	f.lastExecSQL = sql
	f.lastExecArg = args
	return f.execTag, f.execErr
}

func (f *fakeRowQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return f.queryRows, f.queryErr
}

func (f *fakeRowQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	f.qrCalls++
	return &fakeRow{err: f.qrErr, val: f.qrRow}
}

type fakeRow struct {
	// if val != nil and is *fakeRow, delegate; else Scan first arg
	val Row
	err error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.val != nil {
		return r.val.Scan(dest...)
	}
	// default: put a constant into first dest if it's *T
	if len(dest) > 0 {
		switch p := dest[0].(type) {
		case *int64:
			*p = 42
		case *[]byte:
			*p = []byte("ok")
		default:
			// try reflection
			rv := reflect.ValueOf(dest[0])
			if rv.Kind() == reflect.Pointer && rv.Elem().CanSet() {
				zero := reflect.Zero(rv.Elem().Type())
				rv.Elem().Set(zero)
			}
		}
	}
	return nil
}

type fakeRows struct {
	cols   []string
	data   [][]any // each row is len(cols)
	idx    int     // -1 before first
	err    error
	closed bool
}

func newRows(cols []string, data [][]any) *fakeRows {
	return &fakeRows{cols: cols, data: data, idx: -1}
}
func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx >= 0 && r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of bounds")
	}
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return errors.New("dest len mismatch")
	}
	for i := range dest {
		// dest[i] is pointer; set underlying to row[i]
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || !dv.Elem().CanSet() {
			return errors.New("dest not settable")
		}
		val := reflect.ValueOf(row[i])
		// if types don't match, try conversion for common cases
		if val.IsValid() && val.Type().AssignableTo(dv.Elem().Type()) {
			dv.Elem().Set(val)
			continue
		}
		// []byte -> string
		if b, ok := row[i].([]byte); ok && dv.Elem().Kind() == reflect.String {
			dv.Elem().SetString(string(b))
			continue
		}
		// string -> []byte
		if s, ok := row[i].(string); ok && dv.Elem().Kind() == reflect.Slice &&
			dv.Elem().Type().Elem().Kind() == reflect.Uint8 {
			dv.Elem().SetBytes([]byte(s))
			continue
		}
		if val.IsValid() && val.Type().ConvertibleTo(dv.Elem().Type()) {
			dv.Elem().Set(val.Convert(dv.Elem().Type()))
			continue
		}
		dv.Elem().Set(reflect.Zero(dv.Elem().Type()))
	}
	return nil
}
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

/*
	tests
*/

func TestExecOne(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		tag      CommandTag
		execErr  error
		wantErr  bool
		notFound bool
	}{
		{name: "one", tag: cmdTag("OK 1")},
		{name: "zero is not found", tag: cmdTag("OK 0"), wantErr: true, notFound: true},
		{name: "two", tag: cmdTag("OK 2"), wantErr: true},
		{name: "exec error", execErr: errors.New("boom"), wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := &fakeRowQuerier{execTag: c.tag, execErr: c.execErr}
			err := ExecOne(context.Background(), f, "delete")
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if perr.IsNotFound(err) != c.notFound {
				t.Fatalf("not found = %v, want %v", perr.IsNotFound(err), c.notFound)
			}
		})
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()

	f := &fakeRowQuerier{qrRow: Row(&scanVal{v: int64(7)})}
	got, err := Scalar[int64](context.Background(), f, "select count")
	if err != nil || got != 7 {
		t.Fatalf("Scalar got %d, %v want 7", got, err)
	}

	fe := &fakeRowQuerier{qrErr: errors.New("scan")}
	if _, err := Scalar[int64](context.Background(), fe, "select"); err == nil {
		t.Fatalf("expected scan error")
	}
}

// scanVal lets us force the returned Scan value
type scanVal struct{ v any }

func (s *scanVal) Scan(dest ...any) error {
	if len(dest) == 0 {
		return nil
	}
	dv := reflect.ValueOf(dest[0])
	if dv.Kind() == reflect.Pointer && dv.Elem().CanSet() {
		val := reflect.ValueOf(s.v)
		if val.Type().AssignableTo(dv.Elem().Type()) {
			dv.Elem().Set(val)
		} else if val.Type().ConvertibleTo(dv.Elem().Type()) {
			dv.Elem().Set(val.Convert(dv.Elem().Type()))
		}
	}
	return nil
}

func scanInt(r Row) (int, error) {
	var x int
	return x, r.Scan(&x)
}

func TestOne(t *testing.T) {
	t.Parallel()

	rows := newRows([]string{"n"}, [][]any{{5}})
	item, err := One(context.Background(), &fakeRowQuerier{queryRows: rows}, scanInt, "select")
	if err != nil || item != 5 {
		t.Fatalf("One = %d, %v want 5", item, err)
	}
	if !rows.closed {
		t.Fatalf("rows not closed")
	}

	_, err = One(context.Background(), &fakeRowQuerier{queryRows: newRows([]string{"a"}, nil)}, scanInt, "q")
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = One(context.Background(), &fakeRowQuerier{queryRows: newRows([]string{"a"}, [][]any{{1}, {2}})}, scanInt, "q")
	if err == nil {
		t.Fatalf("expected error for >1 row")
	}

	iterErr := newRows([]string{"a"}, nil)
	iterErr.err = errors.New("iter")
	if _, err := One(context.Background(), &fakeRowQuerier{queryRows: iterErr}, scanInt, "q"); err == nil || perr.IsNotFound(err) {
		t.Fatalf("expected iterator error, got %v", err)
	}
}

func TestMany(t *testing.T) {
	t.Parallel()

	items, err := Many(context.Background(), &fakeRowQuerier{queryRows: newRows([]string{"n"}, [][]any{{1}, {2}, {3}})}, scanInt, "q")
	if err != nil {
		t.Fatalf("Many err: %v", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(items, want) {
		t.Fatalf("Many %v want %v", items, want)
	}

	empty, err := Many(context.Background(), &fakeRowQuerier{queryRows: newRows([]string{"n"}, nil)}, scanInt, "q")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty Many = %v, %v", empty, err)
	}

	if _, err := Many(context.Background(), &fakeRowQuerier{queryErr: errors.New("q")}, scanInt, "q"); err == nil {
		t.Fatalf("expected query error")
	}

	bad := newRows([]string{"n"}, [][]any{{1, 2}})
	if _, err := Many(context.Background(), &fakeRowQuerier{queryRows: bad}, scanInt, "q"); err == nil {
		t.Fatalf("expected scan error")
	}
}
