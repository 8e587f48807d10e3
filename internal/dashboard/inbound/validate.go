package inbound

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgerror"
)

type structValidator struct {
	v *validator.Validate
}

func newValidator() *structValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &structValidator{v: v}
}

// Struct validates s and reports one detail per failed field, keyed by its json path.
func (sv *structValidator) Struct(s any) error {
	err := sv.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pkgerror.NewInvalidInput(err)
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		details[field] = "failed on " + fe.Tag()
	}

	return pkgerror.WithDetails(pkgerror.NewInvalidInput(err), details)
}
