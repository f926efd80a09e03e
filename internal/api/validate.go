package api

import (
	"encoding/json" // JSON decode error types
	"errors"        // Error unwrapping
	"net/http"      // HTTP status codes
	"reflect"       // Struct tag inspection
	"strconv"       // String conversion
	"strings"       // String manipulation

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin binding engine
	"github.com/go-playground/validator/v10" // Validator behind gin's binding tags
)

// fieldError describes one invalid request field.
type fieldError struct {
	Field   string `json:"field"`   // Field that failed
	Message string `json:"message"` // Why it failed
}

// registerTagNames makes the validator report json field names instead of Go
// struct field names in error bodies. Safe to call more than once.
func registerTagNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fd reflect.StructField) string {
			name := strings.SplitN(fd.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON binds the request body into dest, writing the 422 response itself
// when validation fails. Returns false when the request was rejected.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondValidation(c, bindingErrors(err))
		return false
	}
	return true
}

// bindingErrors translates a binding failure into per-field messages.
func bindingErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []fieldError{{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()}}
	}
	// Empty or syntactically broken body
	return []fieldError{{Field: "body", Message: "must be valid JSON"}}
}

// validationMessage renders a human-readable reason for one failed rule.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return "failed the '" + fe.Tag() + "' rule"
	}
}

// respondValidation writes a 422 carrying one entry per failing field.
func respondValidation(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// pathID parses the {id} path segment. A segment that is not a well-formed
// identifier is a validation failure (422), distinct from a well-formed id
// that matches no record (404).
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondValidation(c, []fieldError{{Field: "id", Message: "must be a positive integer"}})
		return 0, false
	}
	return uint(id), true
}

// listParams parses the skip and limit query parameters with their defaults
// (0 and 100). Non-integer values are a validation failure.
func listParams(c *gin.Context) (skip, limit int, ok bool) {
	skip, limit = 0, 100 // Defaults
	var errs []fieldError
	if s := c.Query("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, fieldError{Field: "skip", Message: "must be an integer"})
		} else {
			skip = v
		}
	}
	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil {
			errs = append(errs, fieldError{Field: "limit", Message: "must be an integer"})
		} else {
			limit = v
		}
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return 0, 0, false
	}
	return skip, limit, true
}
