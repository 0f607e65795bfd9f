package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidationError 请求参数校验失败
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("Field [%s] failed validation rule [%s=%s]", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("Field [%s] failed validation rule [%s]", e.Field, e.Rule)
}

// ValidateVar 校验单个值，field 用于错误信息
func ValidateVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return &ValidationError{
				Field: field,
				Rule:  vErrs[0].Tag(),
				Param: vErrs[0].Param(),
			}
		}
		return err
	}
	return nil
}

// ValidateDTO 校验 DTO 的 validate 标签，只返回第一个错误
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return &ValidationError{
				Field: firstError.Field(),
				Rule:  firstError.Tag(),
				Param: firstError.Param(),
			}
		}
		return err
	}
	return nil
}
