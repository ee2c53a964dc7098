package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"prodlog/internal/constants"
	"prodlog/internal/storage"
)

// Errors - ошибки по полям (ключ - json имя), на каждое поле хранится первая найденная
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors достает ошибки полей из цепочки
func AsErrors(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Теги для struct-level правил
const (
	TagStation       = "station"
	TagCustomMessage = "custom_message"
	TagOperatorID    = "operator_id"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// в ошибках используем json имена полей
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(val, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(val, "maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	// справочники
	mustRegister(val, "process", func(fl validator.FieldLevel) bool {
		return constants.IsProcess(fl.Field().String())
	})
	mustRegister(val, "target_process", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return p == storage.AllProcesses || constants.IsProcess(p)
	})
	mustRegister(val, "model", func(fl validator.FieldLevel) bool {
		return constants.IsModel(fl.Field().String())
	})
	mustRegister(val, "shift", func(fl validator.FieldLevel) bool {
		return constants.IsTime(fl.Field().String())
	})
	mustRegister(val, "instruction_type", func(fl validator.FieldLevel) bool {
		return constants.IsInstructionType(fl.Field().String())
	})

	return val
}

func mustRegister(val *validator.Validate, tag string, fn validator.Func) {
	if err := val.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %s: %v", tag, err))
	}
}

// RegisterStructValidation добавляет правило, зависящее от нескольких полей.
// Вызывать только из init(), валидатор не потокобезопасен на регистрацию.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	v.RegisterStructValidation(fn, types...)
}

// Struct проверяет структуру по тегам validate и возвращает Errors
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := Errors{}
	for _, fe := range fieldErrs {
		if _, exists := out[fe.Field()]; !exists {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		if fe.Param() == "0" {
			return "must be a positive integer"
		}
		return "must be greater than " + fe.Param()
	case "maxbytes":
		return "must be at most " + fe.Param() + " bytes"
	case "process":
		return "must be one of: " + strings.Join(constants.Processes, ", ")
	case "target_process":
		return "must be " + storage.AllProcesses + " or one of: " + strings.Join(constants.Processes, ", ")
	case "model":
		return "must be one of: " + strings.Join(constants.Models, ", ")
	case "shift":
		return "must be one of: " + strings.Join(constants.Times, ", ")
	case "instruction_type":
		return "must be one of: " + strings.Join(constants.InstructionTypes, ", ")
	case TagStation:
		if fe.Param() == "" {
			return "unknown station"
		}
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case TagCustomMessage:
		return "required for custom message"
	case TagOperatorID:
		return "required for operators"
	}
	return "invalid value"
}
