package scheem

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/ugorji/go/codec"
)

/*
 Conversion map

 Go interface{}  <--(1)--> Sexp
       ^
      (2)
       V
     JSON

(1) SexpToGo() and GoToSexp() herein. Numbers are float64, atoms
    are strings, lists are []interface{}, #nil is nil. Procedures
    have no Go data form. Strings that look like numbers are not
    atoms and fail to convert.
(2) provided by ugorji/go/codec.
*/

var jsonHelper = func() *codec.JsonHandle {
	jh := &codec.JsonHandle{}
	jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return jh
}()

func SexpToGo(x Sexp) (interface{}, error) {
	switch e := x.(type) {
	case SexpNumber:
		return float64(e), nil
	case SexpBool:
		return bool(e), nil
	case SexpSentinel:
		if e == SexpNil {
			return nil, nil
		}
	case *SexpSymbol:
		return e.name, nil
	case SexpList:
		arr := make([]interface{}, len(e))
		for i := range e {
			v, err := SexpToGo(e[i])
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	}
	return nil, fmt.Errorf("SexpToGo: %s '%s' has no data form: %w", TypeName(x), sexpStr(x), ErrType)
}

func GoToSexp(iface interface{}) (Sexp, error) {
	switch v := iface.(type) {
	case nil:
		return SexpNil, nil
	case bool:
		return SexpBool(v), nil
	case float64:
		return SexpNumber(v), nil
	case float32:
		return SexpNumber(v), nil
	case int:
		return SexpNumber(v), nil
	case int64:
		return SexpNumber(v), nil
	case int32:
		return SexpNumber(v), nil
	case uint64:
		return SexpNumber(v), nil
	case uint32:
		return SexpNumber(v), nil
	case string:
		return dataAtom(v)
	case []byte:
		return dataAtom(string(v))
	case []interface{}:
		list := make(SexpList, len(v))
		for i := range v {
			x, err := GoToSexp(v[i])
			if err != nil {
				return SexpNil, err
			}
			list[i] = x
		}
		return list, nil
	}
	return SexpNil, fmt.Errorf("GoToSexp: unsupported Go type %T: %w", iface, ErrType)
}

// dataAtom turns decoded text into an atom. Empty text, or text that
// would read back as a number, is refused.
func dataAtom(s string) (Sexp, error) {
	if s == "" || IsNumberLiteral(s) {
		return SexpNil, fmt.Errorf("string '%s' cannot be an atom: %w", s, ErrInvalidSymbol)
	}
	return MakeSymbol(s), nil
}

func JsonToGo(json []byte) (interface{}, error) {
	var iface interface{}
	decoder := codec.NewDecoderBytes(json, jsonHelper)
	err := decoder.Decode(&iface)
	if err != nil {
		return nil, err
	}
	return iface, nil
}

func GoToJson(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	encoder := codec.NewEncoder(&w, jsonHelper)
	err := encoder.Encode(&iface)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// json -> sexp
func JsonToSexp(json []byte) (Sexp, error) {
	iface, err := JsonToGo(json)
	if err != nil {
		return SexpNil, err
	}
	return GoToSexp(iface)
}

// sexp -> json
func SexpToJson(x Sexp) ([]byte, error) {
	iface, err := SexpToGo(x)
	if err != nil {
		return nil, err
	}
	return GoToJson(iface)
}

// JsonToBindings reads a JSON object into name/value pairs for a
// top-level frame. Every key must be a legal atom.
func JsonToBindings(json []byte) (map[string]Sexp, error) {
	var m map[string]interface{}
	decoder := codec.NewDecoderBytes(json, jsonHelper)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("bindings must be a JSON object: %v", err)
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	res := make(map[string]Sexp, len(m))
	for _, k := range names {
		if _, err := CheckSymbol("bindings", MakeSymbol(k)); err != nil {
			return nil, err
		}
		x, err := GoToSexp(m[k])
		if err != nil {
			return nil, fmt.Errorf("binding '%s': %w", k, err)
		}
		res[k] = x
	}
	return res, nil
}
