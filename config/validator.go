package config

import (
	"sync"

	"github.com/grovetools/gamestate/schema"
)

var (
	settingsValidator    *SchemaValidator
	settingsValidatorErr error
	settingsValidatorMu  sync.Mutex
)

// SchemaValidator validates raw settings documents against the generated schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator returns the settings validator, compiling the schema on
// first use.
func NewSchemaValidator() (*SchemaValidator, error) {
	settingsValidatorMu.Lock()
	defer settingsValidatorMu.Unlock()

	if settingsValidator != nil || settingsValidatorErr != nil {
		return settingsValidator, settingsValidatorErr
	}

	data, err := GenerateSchema()
	if err != nil {
		settingsValidatorErr = err
		return nil, err
	}
	validator, err := schema.NewValidator("settings.json", data)
	if err != nil {
		settingsValidatorErr = err
		return nil, err
	}
	settingsValidator = &SchemaValidator{validator: validator}
	return settingsValidator, nil
}

// Validate validates a document against the schema.
func (v *SchemaValidator) Validate(document interface{}) error {
	return v.validator.Validate(document)
}
