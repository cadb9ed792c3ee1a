/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package std

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// newEnumHandler covers named types over a scalar kind. Types whose pointer
// implements encoding.TextUnmarshaler decode through it; otherwise string
// kinds convert textual input directly and integer kinds convert numeric
// input directly.
func newEnumHandler(cfg apis.Config, t reflect.Type) (apis.Handler, error) {
	if t.Name() == "" || t.PkgPath() == "" {
		return nil, errors.Wrapf(ErrNoHandler, "enum category: %s is not a named type", t)
	}
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, errors.Wrapf(ErrNoHandler, "enum category: %s has non-scalar kind %s", t, t.Kind())
	}
	return &enumHandler{
		t:    t,
		fold: cfg.FoldEnumCase,
		text: reflect.PtrTo(t).Implements(textUnmarshalerType),
	}, nil
}

// enumHandler decodes enumerated values from textual or numeric form.
type enumHandler struct {
	t    reflect.Type
	fold bool
	text bool
}

// Materialize builds a t value from a scalar form.
func (h *enumHandler) Materialize(raw any, _ apis.Provider) (reflect.Value, error) {
	switch rv := raw.(type) {
	case string:
		s := rv
		if h.fold {
			s = strings.ToLower(s)
		}
		if h.text {
			pv := reflect.New(h.t)
			if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s: %q", h.t, rv)
			}
			return pv.Elem(), nil
		}
		if h.t.Kind() == reflect.String {
			return reflect.ValueOf(s).Convert(h.t), nil
		}
		return reflect.Value{}, errors.Errorf("dfx(std): %s: cannot decode %q into numeric enum without TextUnmarshaler", h.t, rv)
	case nil:
		return reflect.Zero(h.t), nil
	default:
		v := reflect.ValueOf(raw)
		if h.t.Kind() != reflect.String && v.Type().ConvertibleTo(h.t) {
			return v.Convert(h.t), nil
		}
		return reflect.Value{}, errors.Errorf("dfx(std): %s: unsupported enum form %T", h.t, raw)
	}
}
