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
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/dxapi/common"
	"dirpx.dev/dfx/introspect"
)

// newStructHandler introspects t once and captures the property layout.
func newStructHandler(cfg apis.Config, t reflect.Type) (apis.Handler, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrNoHandler, "struct category: %s", t)
	}
	props, err := introspect.Properties(cfg, t)
	if err != nil {
		return nil, errors.Wrapf(err, "dfx(std): struct handler for %s", t)
	}
	return &structHandler{t: t, cfg: cfg, props: props}, nil
}

// structHandler binds decoded object properties to struct fields.
type structHandler struct {
	t     reflect.Type
	cfg   apis.Config
	props []introspect.Property
}

// Materialize builds a t value from an object form, honoring the Defaulter
// hook before binding and the Validator hook after.
func (h *structHandler) Materialize(raw any, p apis.Provider) (reflect.Value, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return reflect.Value{}, errors.Errorf("dfx(std): %s: expected object form, got %T", h.t, raw)
	}

	pv := reflect.New(h.t)
	if d, ok := pv.Interface().(common.Defaulter); ok {
		d.SetDefaults()
	}

	v := pv.Elem()
	for _, pr := range h.props {
		rv, present := m[pr.Name]
		if !present {
			continue
		}
		fh, err := p.HandlerFor(h.cfg, pr.Type)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s: property %q", h.t, pr.Name)
		}
		fv, err := fh.Materialize(rv, p)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s: property %q", h.t, pr.Name)
		}
		field, err := fieldByIndex(v, pr.Index)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s: property %q", h.t, pr.Name)
		}
		if err := assign(field, fv); err != nil {
			return reflect.Value{}, errors.Wrapf(err, "property %q", pr.Name)
		}
	}

	if val, ok := pv.Interface().(common.Validator); ok {
		if err := val.Validate(); err != nil {
			return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s rejected by validation", h.t)
		}
	}
	return v, nil
}

// fieldByIndex walks an index chain, allocating nil embedded pointers on
// the way down.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 {
			if v.Kind() == reflect.Ptr {
				if v.IsNil() {
					if !v.CanSet() {
						return reflect.Value{}, errors.Errorf("dfx(std): cannot allocate embedded %s", v.Type())
					}
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v, nil
}
