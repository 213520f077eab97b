package version

import (
	"net/http"
	"reflect"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/repository/postgres/version"

	"github.com/pkg/errors"
)

type Controller struct {
	version Version
}

func NewController(version Version) *Controller {
	return &Controller{version: version}
}

func (uc Controller) Create(c *web.Context) error {
	var request version.CreateRequest

	if err := c.BindFunc(&request, "TemplateID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.version.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Approve(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.version.Approve(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Reject(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request version.RejectRequest
	if err := c.BindFunc(&request, "RejectReason"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.version.Reject(c.Ctx, id, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.version.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetListByTemplate(c *web.Context) error {
	templateID, ok := c.GetQueryFunc(reflect.Int, "template_id").(*int)
	if !ok || templateID == nil {
		return c.RespondError(web.NewRequestError(errors.New("template_id parameter is required"), http.StatusBadRequest))
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.version.GetListByTemplate(c.Ctx, *templateID)
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
