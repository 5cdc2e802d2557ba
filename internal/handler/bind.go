package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/bizsite/internal/slug"
)

var validate = newValidator()

// newValidator returns a validator that reports JSON field names and knows
// the "editslug" tag for user-chosen subdomains.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("editslug", func(fl validator.FieldLevel) bool {
		return slug.ValidEditable(fl.Field().String())
	})
	return v
}

// decodeBody decodes the JSON request body into dst and validates it.
// The returned error message is safe to show to the client.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body must not exceed %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	return validationMessage(validate.Struct(dst))
}

// validationMessage flattens validator errors into one readable message.
func validationMessage(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" is not a valid email address")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "editslug":
			msgs = append(msgs, fe.Field()+" must be 3-50 characters of a-z, 0-9 or hyphen")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// pathUUID binds the named chi path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return id, nil
}

// queryInt binds an optional integer query parameter; absent → nil.
func queryInt(r *http.Request, name string) (*int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, fmt.Errorf("invalid %s: must be an integer", name)
	}
	return v, nil
}

// queryString binds a query parameter as a trimmed string. An absent
// optional parameter yields "".
func queryString(r *http.Request, name string, required bool) (string, error) {
	if required {
		var v string
		if err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), &v); err != nil {
			return "", fmt.Errorf("%s query parameter is required", name)
		}
		return strings.TrimSpace(v), nil
	}
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("invalid %s", name)
	}
	if v == nil {
		return "", nil
	}
	return strings.TrimSpace(*v), nil
}
