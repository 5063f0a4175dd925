package scheem

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tinylib/msgp/msgp"
)

// SaveScope writes the data bindings of scope, not those of its
// parents, to w as a msgpack map from name to value. Procedures have
// no data form and unbound parameters no value, so both are left out;
// the names skipped are returned.
func SaveScope(w io.Writer, scope *Scope) (skipped []string, err error) {
	names := make([]string, 0, len(scope.Map))
	for name, val := range scope.Map {
		if val == nil || IsProcedure(val) {
			skipped = append(skipped, name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	sort.Strings(skipped)

	mw := msgp.NewWriter(w)
	if err = mw.WriteMapHeader(uint32(len(names))); err != nil {
		return nil, err
	}
	for _, name := range names {
		if err = mw.WriteString(name); err != nil {
			return nil, err
		}
		if err = writeSexp(mw, scope.Map[name]); err != nil {
			return nil, fmt.Errorf("saving '%s': %w", name, err)
		}
	}
	return skipped, mw.Flush()
}

func writeSexp(mw *msgp.Writer, x Sexp) error {
	switch e := x.(type) {
	case SexpNumber:
		return mw.WriteFloat64(float64(e))
	case SexpBool:
		return mw.WriteBool(bool(e))
	case SexpSentinel:
		if e == SexpNil {
			return mw.WriteNil()
		}
	case *SexpSymbol:
		return mw.WriteString(e.name)
	case SexpList:
		if err := mw.WriteArrayHeader(uint32(len(e))); err != nil {
			return err
		}
		for _, elem := range e {
			if err := writeSexp(mw, elem); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s '%s' cannot be saved: %w", TypeName(x), sexpStr(x), ErrType)
}

// LoadScope reads bindings written by SaveScope into scope, replacing
// any binding of the same name.
func LoadScope(r io.Reader, scope *Scope) error {
	mr := msgp.NewReader(r)
	sz, err := mr.ReadMapHeader()
	if err != nil {
		return err
	}
	for i := uint32(0); i < sz; i++ {
		name, err := mr.ReadString()
		if err != nil {
			return err
		}
		if _, err := CheckSymbol("load", MakeSymbol(name)); err != nil {
			return err
		}
		val, err := readSexp(mr)
		if err != nil {
			return fmt.Errorf("loading '%s': %w", name, err)
		}
		scope.Map[name] = val
	}
	return nil
}

func readSexp(mr *msgp.Reader) (Sexp, error) {
	t, err := mr.NextType()
	if err != nil {
		return SexpNil, err
	}
	switch t {
	case msgp.Float64Type:
		f, err := mr.ReadFloat64()
		return SexpNumber(f), err
	case msgp.Float32Type:
		f, err := mr.ReadFloat32()
		return SexpNumber(f), err
	case msgp.IntType:
		i, err := mr.ReadInt64()
		return SexpNumber(i), err
	case msgp.UintType:
		u, err := mr.ReadUint64()
		return SexpNumber(u), err
	case msgp.BoolType:
		b, err := mr.ReadBool()
		return SexpBool(b), err
	case msgp.NilType:
		return SexpNil, mr.ReadNil()
	case msgp.StrType:
		s, err := mr.ReadString()
		if err != nil {
			return SexpNil, err
		}
		return dataAtom(s)
	case msgp.ArrayType:
		n, err := mr.ReadArrayHeader()
		if err != nil {
			return SexpNil, err
		}
		list := make(SexpList, n)
		for i := range list {
			list[i], err = readSexp(mr)
			if err != nil {
				return SexpNil, err
			}
		}
		return list, nil
	}
	return SexpNil, fmt.Errorf("unsupported msgpack type %v: %w", t, ErrType)
}

// SaveScopeToFile refuses to overwrite an existing file unless
// overwrite is set.
func SaveScopeToFile(fn string, scope *Scope, overwrite bool) ([]string, error) {
	if !overwrite && FileExists(fn) {
		return nil, fmt.Errorf("refusing to write to existing file '%s'", fn)
	}
	f, err := os.Create(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return SaveScope(f, scope)
}

func LoadScopeFromFile(fn string, scope *Scope) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return LoadScope(f, scope)
}

func FileExists(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}
