// Package transforms applies operator supplied overrides to reference records,
// eg. renaming a station or recolouring a line without rebuilding the binary.
package transforms

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var transforms []*TransformDefinition

// TransformDefinition sets the Data fields on every record of Type whose
// fields equal all of Match. An empty Type matches any record.
type TransformDefinition struct {
	Type  string                 `yaml:"type"`
	Match map[string]string      `yaml:"match"`
	Data  map[string]interface{} `yaml:"data"`
}

// SetupClient loads the definitions named by PATNAMETRO_TRANSFORMS_FILE.
// With the variable unset no transforms are applied.
func SetupClient() error {
	filename := os.Getenv("PATNAMETRO_TRANSFORMS_FILE")
	if filename == "" {
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	definitions, err := Parse(file)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	Register(definitions...)

	log.Info().Int("transforms", len(definitions)).Str("file", filename).Msg("Loaded transforms")

	return nil
}

func Parse(reader io.Reader) ([]*TransformDefinition, error) {
	var definitions []*TransformDefinition

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&definitions); err != nil && err != io.EOF {
		return nil, err
	}

	return definitions, nil
}

func Register(definitions ...*TransformDefinition) {
	transforms = append(transforms, definitions...)
}

func Reset() {
	transforms = nil
}

func (t *TransformDefinition) Transform(inputValue reflect.Value) {
	if !inputValue.IsValid() || inputValue.Kind() != reflect.Struct {
		return
	}

	if t.Type != "" && t.Type != inputValue.Type().String() {
		return
	}

	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || field.Kind() != reflect.String || value != field.String() {
			return
		}
	}

	for key, value := range t.Data {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || !field.CanSet() {
			continue
		}

		dataValue := reflect.ValueOf(value)
		if !dataValue.IsValid() || !dataValue.Type().ConvertibleTo(field.Type()) ||
			(field.Kind() == reflect.String && dataValue.Kind() != reflect.String) {
			log.Warn().Str("type", inputValue.Type().String()).Str("field", key).Msg("Transform value does not fit field")
			continue
		}

		field.Set(dataValue.Convert(field.Type()))
	}
}

// Transform runs every registered definition over input, which must be a
// pointer to a struct or a slice of structs or struct pointers
func Transform(input interface{}) {
	if len(transforms) == 0 || input == nil {
		return
	}

	inputValueOf := reflect.ValueOf(input)

	if inputValueOf.Kind() == reflect.Slice {
		for i := 0; i < inputValueOf.Len(); i++ {
			transformValue(inputValueOf.Index(i))
		}
	} else {
		transformValue(inputValueOf)
	}
}

func transformValue(inputValue reflect.Value) {
	if inputValue.Kind() == reflect.Pointer {
		inputValue = inputValue.Elem()
	}

	for _, transformDef := range transforms {
		transformDef.Transform(inputValue)
	}
}
