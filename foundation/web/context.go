package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped context.Context next to the gin context.
// Param and query accessors collect parse problems; ValidParam/ValidQuery
// report them in one shot so handlers read values first and validate once.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []string
	queryErrs []string
}

// GetParam reads a path parameter converted to the given kind. Values that
// do not convert are recorded and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Context.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Sprintf("param %q must be an integer", name))
		}
		return v
	case reflect.String:
		return value
	default:
		c.paramErrs = append(c.paramErrs, fmt.Sprintf("param %q has unsupported kind", name))
		return nil
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.paramErrs, "; ")), http.StatusBadRequest)
}

// GetQueryFunc reads an optional query parameter converted to a pointer of
// the given kind. A missing parameter yields a typed nil pointer.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.Context.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("query %q must be an integer", name))
			return (*int)(nil)
		}
		return &v
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("query %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &v
	default:
		c.queryErrs = append(c.queryErrs, fmt.Sprintf("query %q has unsupported kind", name))
		return nil
	}
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.queryErrs, "; ")), http.StatusBadRequest)
}

// BindFunc binds the request body into data and checks that the named
// struct fields are present (non nil for pointers, non zero otherwise).
func (c *Context) BindFunc(data interface{}, required ...string) error {
	if err := c.Context.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request body"), http.StatusBadRequest)
	}

	v := reflect.Indirect(reflect.ValueOf(data))
	fields := map[string]string{}

	for _, name := range required {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				fields[name] = "required field"
			}
			continue
		}
		if f.IsZero() {
			fields[name] = "required field"
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// Respond sends a JSON response with the given status code.
func (c *Context) Respond(data interface{}, status int) error {
	c.Context.JSON(status, data)
	return nil
}

// RespondError sends the error back to the client. Trusted *web.Error
// values keep their status and message, anything else becomes a 500.
func (c *Context) RespondError(err error) error {
	if err == nil {
		return nil
	}

	var webErr *Error
	if errors.As(err, &webErr) {
		body := map[string]interface{}{
			"error":  webErr.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		return c.Respond(body, webErr.Status)
	}

	return c.Respond(map[string]interface{}{
		"error":  "internal server error",
		"status": false,
	}, http.StatusInternalServerError)
}
