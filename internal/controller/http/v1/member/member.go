package member

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/repository/postgres/member"
	"gaon/backend/internal/service/qrcode"
)

type Controller struct {
	member Member
	qrDir  string
}

func NewController(member Member, qrDir string) *Controller {
	return &Controller{member: member, qrDir: qrDir}
}

func (uc Controller) Create(c *web.Context) error {
	var request member.CreateRequest

	if err := c.BindFunc(&request, "Login", "Password", "Role"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.member.Create(c.Ctx, request)
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

	detail, err := uc.member.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": member.GetListResponse{
			ID:       detail.ID,
			Login:    detail.Login,
			Role:     detail.Role,
			FullName: detail.FullName,
			Phone:    detail.Phone,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	list, err := uc.member.GetList(c.Ctx)
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

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.member.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// GetQrCode streams the student's check-in QR image.
func (uc Controller) GetQrCode(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	// The member must exist before an image is handed out.
	if _, err := uc.member.GetById(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	filePath, err := qrcode.GenerateStudentCode(uc.qrDir, id)
	if err != nil {
		return c.RespondError(err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename="+filepath.Base(filePath))
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}

	return nil
}
