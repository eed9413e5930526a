// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Enricher keeps a configuration structure of the type T and allows to fill it
	// step by step - from a file, from another enricher value and from the environment
	// variables, so that the later sources refine the earlier ones.
	//
	// The type T must be a struct. Only the exported fields are updated. A field may be
	// addressed either by its name or by the alias - the first name in its json:"..."
	// tag. The names and the aliases are matched case-insensitively, so FIELDA, fieldA
	// and an alias abc for the `json:"abc"` tag all point to the same field.
	Enricher[T any] interface {
		// LoadFromFile reads the fileName and unmarshals it over the current value.
		// The format is selected by the file extension - .json or .yaml
		LoadFromFile(fileName string) error

		// LoadFromJSONFile reads the jsonFileName and unmarshals its content as JSON
		// over the current value. The empty jsonFileName is ok, nothing happens then
		LoadFromJSONFile(jsonFileName string) error

		// LoadFromYAMLFile reads the yamlFileName and unmarshals its content as YAML
		// over the current value. The empty yamlFileName is ok, nothing happens then
		LoadFromYAMLFile(yamlFileName string) error

		// ApplyOther overwrites the current value fields by the non-zero fields of the
		// other enricher value. The apply is deep, so only the leaf fields the other
		// enricher actually has set are overwritten
		ApplyOther(other Enricher[T]) error

		// ApplyEnvVariables selects the environment variables which names start from
		// prefix and applies them to the current value. The variable name forms a path
		// to the field, the path elements are separated by sep.
		//
		// For the type
		//
		//	type Config struct {
		//		Field  int
		//		InnerS *Inner    // Inner has the fields Val and StrPtr `json:"haha"`
		//	}
		//
		// and the call ApplyEnvVariables("MyServer", "_") the following variables
		// will be applied:
		//
		//	MYSERVER_FIELD
		//	MYSERVER_INNERS_VAL
		//	MYSERVER_INNERS_STRPTR or MYSERVER_INNERS_HAHA
		//
		// The variable value must be a JSON value for the complex types (slices, maps,
		// structs). The plain numbers and strings may be provided as is, like 123 or
		// hello world. A variable which addresses a whole struct, like
		// MYSERVER_INNERS={"val": 123}, replaces the struct instead of merging it.
		ApplyEnvVariables(prefix, sep string) error

		// ApplyKeyValues applies the key-value pairs to the current value. The keys
		// are treated the same way as the variable names in ApplyEnvVariables
		ApplyKeyValues(prefix, sep string, keyValues map[string]string)

		// Value returns the enricher current value
		Value() T
	}

	enricher[T any] struct {
		log logging.Logger
		val T
	}
)

// NewEnricher constructs new Enricher for the type T, which must be a struct
func NewEnricher[T any](val T) Enricher[T] {
	if tp := reflect.TypeOf(val); tp.Kind() != reflect.Struct {
		panic(fmt.Sprintf("the Enricher accepts structs only, but got %s", tp.Kind()))
	}
	return newEnricher(val)
}

func newEnricher[T any](val T) *enricher[T] {
	e := new(enricher[T])
	e.val = val
	e.log = logging.NewLogger("config.enricher." + reflect.TypeOf(val).Name())
	return e
}

func (e *enricher[T]) LoadFromFile(fileName string) error {
	if fileName == "" {
		e.log.Infof("no config file name is provided, skipping the load")
		return nil
	}
	switch fn := strings.ToLower(strings.TrimSpace(fileName)); {
	case strings.HasSuffix(fn, ".yaml"):
		return e.LoadFromYAMLFile(fileName)
	case strings.HasSuffix(fn, ".json"):
		return e.LoadFromJSONFile(fileName)
	}
	return fmt.Errorf("unknown config file format %s, expecting .json or .yaml: %w", fileName, errors.ErrInvalid)
}

func (e *enricher[T]) LoadFromJSONFile(jsonFileName string) error {
	if jsonFileName == "" {
		return nil
	}
	e.log.Infof("reading JSON config from %s", jsonFileName)
	buf, err := os.ReadFile(jsonFileName)
	if err != nil {
		return fmt.Errorf("could not read the file %s: %w", jsonFileName, err)
	}
	if err = json.Unmarshal(buf, &e.val); err != nil {
		return fmt.Errorf("could not unmarshal the JSON file %s: %w", jsonFileName, err)
	}
	return nil
}

func (e *enricher[T]) LoadFromYAMLFile(yamlFileName string) error {
	if yamlFileName == "" {
		return nil
	}
	e.log.Infof("reading YAML config from %s", yamlFileName)
	buf, err := os.ReadFile(yamlFileName)
	if err != nil {
		return fmt.Errorf("could not read the file %s: %w", yamlFileName, err)
	}
	if err = yaml.Unmarshal(buf, &e.val); err != nil {
		return fmt.Errorf("could not unmarshal the YAML file %s: %w", yamlFileName, err)
	}
	return nil
}

func (e *enricher[T]) ApplyOther(other Enricher[T]) error {
	src := other.Value()
	merge(reflect.ValueOf(&src).Elem(), reflect.ValueOf(&e.val).Elem())
	return nil
}

func (e *enricher[T]) ApplyEnvVariables(prefix, sep string) error {
	e.log.Infof("applying the environment variables with the prefix %s", prefix)
	kvs := make(map[string]string)
	for _, v := range os.Environ() {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 {
			continue
		}
		kvs[parts[0]] = parts[1]
	}
	e.ApplyKeyValues(prefix, sep, kvs)
	return nil
}

func (e *enricher[T]) ApplyKeyValues(prefix, sep string, keyValues map[string]string) {
	sep = strings.ToUpper(sep)
	pfx := ""
	if prefix != "" {
		pfx = strings.ToUpper(prefix) + sep
	}
	for k, v := range keyValues {
		k = strings.ToUpper(k)
		if !strings.HasPrefix(k, pfx) {
			continue
		}
		ok := e.setByPath(&e.val, k[len(pfx):], sep, v)
		e.log.Infof("applying the key %s: %t", k, ok)
	}
}

func (e *enricher[T]) Value() T {
	return e.val
}

// merge overwrites dst by the non-zero fields of src. The nil pointers on the dst side
// are allocated on the way down. A non-struct field is overwritten as a whole.
func merge(src, dst reflect.Value) {
	if src.IsZero() {
		return
	}
	switch src.Kind() {
	case reflect.Ptr:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		merge(src.Elem(), dst.Elem())
	case reflect.Struct:
		for i := 0; i < src.NumField(); i++ {
			merge(src.Field(i), dst.Field(i))
		}
	default:
		dst.Set(src)
	}
}

// setByPath assigns the value v to the field of the struct pointed by s. The path
// contains the field names or their json aliases separated by sep, uppercased. The
// nil pointers on the path are created, but only when the whole path matches. It
// returns false if the path does not address a field of s.
func (e *enricher[T]) setByPath(s any, path, sep string, v string) bool {
	val := reflect.ValueOf(s)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		e.log.Warnf("could not assign the value via the non-struct type %s", val.Kind())
		return false
	}
	name, rest := path, ""
	if idx := strings.Index(path, sep); idx >= 0 {
		name, rest = path[:idx], path[idx+len(sep):]
	}
	if name == "" {
		e.log.Warnf("could not assign the value for the empty field name")
		return false
	}

	strct := val.Elem()
	tp := strct.Type()
	for i := 0; i < strct.NumField(); i++ {
		sf := tp.Field(i)
		if name != strings.ToUpper(sf.Name) && name != jsonAlias(string(sf.Tag)) {
			continue
		}
		f := strct.Field(i)
		if rest != "" {
			return e.stepInto(f, rest, sep, v)
		}
		if !f.CanSet() {
			panic(fmt.Sprintf("could not assign the value to the non-settable field %s", sf.Name))
		}
		if err := setFieldFromString(f, v); err != nil {
			panic(fmt.Sprintf("could not assign the value %s to the field %s: %s", v, sf.Name, err))
		}
		return true
	}
	return false
}

// stepInto continues the setByPath walk through the struct or the pointer field f.
// The field is modified only when the rest of the path matches.
func (e *enricher[T]) stepInto(f reflect.Value, path, sep string, v string) bool {
	if f.Kind() == reflect.Ptr {
		obj := f.Interface()
		if f.IsNil() {
			obj = reflect.New(f.Type().Elem()).Interface()
		}
		if !e.setByPath(obj, path, sep, v) {
			return false
		}
		f.Set(reflect.ValueOf(obj))
		return true
	}
	ptr := reflect.New(f.Type())
	ptr.Elem().Set(f)
	if !e.setByPath(ptr.Interface(), path, sep, v) {
		return false
	}
	f.Set(ptr.Elem())
	return true
}

// setFieldFromString assigns the string s to the field. The numbers and the strings
// may be provided as is, everything else must be a JSON value, for example:
//
//	int: 1234
//	string: la la la
//	[]string: ["aaa", "bbbb"]
//	map[int]string: {1: "sss"}
func setFieldFromString(field reflect.Value, s string) error {
	if len(s) == 0 {
		return nil
	}
	if isStringKind(field.Type()) && !isQuoted(s) {
		s = strconv.Quote(s)
	}
	obj := reflect.New(field.Type())
	if err := json.Unmarshal([]byte(s), obj.Interface()); err != nil {
		return err
	}
	field.Set(obj.Elem())
	return nil
}

func isQuoted(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"'
}

func isStringKind(tp reflect.Type) bool {
	for tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	return tp.Kind() == reflect.String
}

// jsonAlias returns the uppercased alias of the field from its json tag, or the
// empty string if the json tag is not set or carries no name
func jsonAlias(tags string) string {
	alias := reflect.StructTag(tags).Get("json")
	if idx := strings.Index(alias, ","); idx >= 0 {
		alias = alias[:idx]
	}
	return strings.ToUpper(alias)
}
