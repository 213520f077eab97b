package template

import (
	"net/http"
	"reflect"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/repository/postgres/template"
)

type Controller struct {
	template Template
}

func NewController(template Template) *Controller {
	return &Controller{template: template}
}

func (uc Controller) Create(c *web.Context) error {
	var request template.CreateRequest

	if err := c.BindFunc(&request, "MemberID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.template.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.template.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	list, err := uc.template.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}
