package middleware

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/diasporahub/internal/pkg/filestorage"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// RegisterValidators adds the custom binding rules to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("dataurl", validateDataURL); err != nil {
		return err
	}
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("handle", validateHandle)
}

// validateDataURL accepts base64 image data URLs
func validateDataURL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !strings.HasPrefix(s, "data:image/") {
		return false
	}
	_, err := filestorage.DecodeDataURL(s)
	return err == nil
}

// validateNotBlank rejects whitespace-only strings
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateHandle(fl validator.FieldLevel) bool {
	return handlePattern.MatchString(fl.Field().String())
}
