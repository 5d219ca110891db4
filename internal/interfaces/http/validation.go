package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

var validate = newValidator()

// newValidator usa el nombre json del campo en los mensajes (items[0].product_id).
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bindJSON parsea el body y aplica las etiquetas validate.
// Devuelve el ErrorResponse listo para un 400, o nil si el body es válido.
func bindJSON(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

func validateStruct(v any) *dto.ErrorResponse {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	fields := make(map[string]string, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fieldPath(fe.Namespace())
		fields[name] = fe.Tag()
		msgs = append(msgs, fmt.Sprintf("%s: %s", name, fe.Tag()))
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: strings.Join(msgs, "; "), Details: fields}
}

// fieldPath quita el nombre del struct raíz: "CreateInboundRequest.items[0].product_id" -> "items[0].product_id".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
