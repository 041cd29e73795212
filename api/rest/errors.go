package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/skillmastery/server/apperr"
	mw "github.com/skillmastery/server/middleware"
	"github.com/skillmastery/server/problem"
	"go.uber.org/zap"
)

func init() {
	// Report validation failures under the json field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// ErrorHandler renders the last error attached with c.Error as a problem
// response, unless the handler already wrote a body.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		p := problem.Details{Detail: err.Error(), TraceID: mw.GetTraceID(c)}
		switch apperr.KindOf(err) {
		case apperr.KindEmptyID:
			p.Title = problem.TitleNotFound
			p.Status = http.StatusBadRequest
			p.Instance = "urn:skillmastery:error:" + uuid.NewString()
		case apperr.KindNotFound:
			p.Title = problem.TitleNotFound
			p.Status = http.StatusNotFound
		case apperr.KindFound:
			p.Title = problem.TitleInUse
			p.Status = http.StatusConflict
		default:
			log.Error("unhandled request error",
				zap.String("trace_id", p.TraceID),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			p.Title = problem.TitleUnexpected
			p.Status = http.StatusInternalServerError
		}
		problem.Write(c, p)
	}
}

// fail routes typed errors to ErrorHandler and answers anything else
// with a plain 500 message.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if apperr.KindOf(err) == apperr.KindUnknown {
		c.String(http.StatusInternalServerError, "Internal server error: %s", err.Error())
	}
}

// abortValidation renders a binding failure as a 400 validation problem.
func abortValidation(c *gin.Context, err error) {
	problem.Abort(c, problem.Details{
		Title:   problem.TitleValidation,
		Status:  http.StatusBadRequest,
		Errors:  validationErrors(err),
		TraceID: mw.GetTraceID(c),
	})
}

func validationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "$"
		}
		out[field] = append(out[field], fmt.Sprintf("The JSON value could not be converted to %s.", typeErr.Type))
	case errors.Is(err, io.EOF):
		out["$"] = []string{"A non-empty request body is required."}
	case errors.As(err, &syntaxErr):
		out["$"] = []string{fmt.Sprintf("The JSON is invalid at offset %d.", syntaxErr.Offset)}
	default:
		out["$"] = []string{err.Error()}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "min":
		return fmt.Sprintf("The field %s must have a minimum length of %s.", name, fe.Param())
	case "max":
		return fmt.Sprintf("The field %s must have a maximum length of %s.", name, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field is not a valid e-mail address.", name)
	case "gt":
		return fmt.Sprintf("The field %s must be greater than %s.", name, fe.Param())
	case "datetime":
		return fmt.Sprintf("The field %s must be a date in YYYY-MM-DD format.", name)
	default:
		return fmt.Sprintf("The field %s is invalid (%s).", name, fe.Tag())
	}
}
