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
)

// newArrayHandler covers slices and fixed-length arrays.
func newArrayHandler(cfg apis.Config, t reflect.Type) (apis.Handler, error) {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return &arrayHandler{t: t, elem: t.Elem(), cfg: cfg}, nil
	default:
		return nil, errors.Wrapf(ErrNoHandler, "array category: %s", t)
	}
}

// arrayHandler decodes an ordered sequence element-wise, resolving the
// element handler once per Materialize call.
type arrayHandler struct {
	t    reflect.Type
	elem reflect.Type
	cfg  apis.Config
}

// Materialize builds a t value from a sequence form.
func (h *arrayHandler) Materialize(raw any, p apis.Provider) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(h.t), nil
	}
	seq, ok := raw.([]any)
	if !ok {
		return reflect.Value{}, errors.Errorf("dfx(std): %s: expected sequence form, got %T", h.t, raw)
	}

	eh, err := p.HandlerFor(h.cfg, h.elem)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s: element handler", h.t)
	}

	var out reflect.Value
	switch h.t.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(h.t, len(seq), len(seq))
	default: // fixed array
		if len(seq) > h.t.Len() {
			return reflect.Value{}, errors.Errorf("dfx(std): %s: %d elements exceed array length %d", h.t, len(seq), h.t.Len())
		}
		out = reflect.New(h.t).Elem()
	}

	for i, rv := range seq {
		ev, err := eh.Materialize(rv, p)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "dfx(std): %s: element %d", h.t, i)
		}
		if err := assign(out.Index(i), ev); err != nil {
			return reflect.Value{}, errors.Wrapf(err, "element %d", i)
		}
	}
	return out, nil
}
