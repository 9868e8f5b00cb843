package form

import "taxform/models"

// Field is one form input: its value, its validity and the rule behind it.
// Valid is nil until the field has been validated once.
type Field struct {
	Value string
	Valid *bool

	validator models.Validator
}

// FieldState is the serializable part of a Field.
type FieldState struct {
	Value string `msgpack:"value"`
	Valid *bool  `msgpack:"valid,omitempty"`
}

func newField(v models.Validator) Field {
	return Field{validator: v}
}

// Validate runs the validator and records the result.
func (f *Field) Validate(ctx models.ValidationContext) bool {
	ok := f.validator(f.Value, ctx)
	f.Valid = &ok
	return ok
}

// IsValid reports a recorded valid result. Unset counts as not valid.
func (f Field) IsValid() bool {
	return f.Valid != nil && *f.Valid
}

// IsInvalid reports a recorded invalid result. Unset counts as not invalid.
func (f Field) IsInvalid() bool {
	return f.Valid != nil && !*f.Valid
}

func (f Field) state() FieldState {
	st := FieldState{Value: f.Value}
	if f.Valid != nil {
		v := *f.Valid
		st.Valid = &v
	}
	return st
}

func (f *Field) restore(st FieldState) {
	f.Value = st.Value
	f.Valid = nil
	if st.Valid != nil {
		v := *st.Valid
		f.Valid = &v
	}
}
