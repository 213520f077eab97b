package router

import (
	"time"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/auth"
	"gaon/backend/internal/middleware"
	"gaon/backend/internal/pkg/repository/postgresql"
	"gaon/backend/internal/service/sweeper"

	"gaon/backend/internal/repository/postgres/attendance"
	"gaon/backend/internal/repository/postgres/member"
	"gaon/backend/internal/repository/postgres/schedule"
	"gaon/backend/internal/repository/postgres/template"
	"gaon/backend/internal/repository/postgres/version"

	attendance_controller "gaon/backend/internal/controller/http/v1/attendance"
	auth_controller "gaon/backend/internal/controller/http/v1/auth"
	member_controller "gaon/backend/internal/controller/http/v1/member"
	schedule_controller "gaon/backend/internal/controller/http/v1/schedule"
	template_controller "gaon/backend/internal/controller/http/v1/template"
	version_controller "gaon/backend/internal/controller/http/v1/version"

	"github.com/redis/go-redis/v9"
)

const qrCodeDir = "media/qrcodes"

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	location   *time.Location
	sweepTime  string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	location *time.Location,
	sweepTime string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		location,
		sweepTime,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware())

	// - postgresql
	memberPostgres := member.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.location)
	templatePostgres := template.NewRepository(r.postgresDB)
	versionPostgres := version.NewRepository(r.postgresDB)
	schedulePostgres := schedule.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(memberPostgres)
	memberController := member_controller.NewController(memberPostgres, qrCodeDir)
	attendanceController := attendance_controller.NewController(attendancePostgres, memberPostgres)
	templateController := template_controller.NewController(templatePostgres)
	versionController := version_controller.NewController(versionPostgres)
	scheduleController := schedule_controller.NewController(schedulePostgres, memberPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #member
	r.Get("/api/v1/member/list", memberController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/member/:id", memberController.GetById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/member/:id/qrcode", memberController.GetQrCode, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/member/create", memberController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/member/:id", memberController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Get("/api/v1/attendance/today", attendanceController.GetTodayList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/export_excel", attendanceController.ExportExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/attendance/:student_id/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/:student_id/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/:student_id/outing/start", attendanceController.OutingStart, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/:student_id/outing/return", attendanceController.OutingReturn, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/attendance/:student_id/excuse-late", attendanceController.ExcuseLate, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/attendance/:student_id/excuse-absent", attendanceController.ExcuseAbsent, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #schedule-template
	r.Post("/api/v1/schedule-template/create", templateController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleStudent))
	r.Get("/api/v1/schedule-template/list", templateController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/schedule-template/:id", templateController.GetById, middleware.Authenticate(r.auth))

	// #schedule-template-version
	r.Post("/api/v1/schedule-template-version/create", versionController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleStudent))
	r.Get("/api/v1/schedule-template-version/list", versionController.GetListByTemplate, middleware.Authenticate(r.auth))
	r.Get("/api/v1/schedule-template-version/:id", versionController.GetDetailById, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/schedule-template-version/:id/approve", versionController.Approve, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/schedule-template-version/:id/reject", versionController.Reject, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #schedule
	r.Post("/api/v1/schedule/generate", scheduleController.Generate, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/schedule/list", scheduleController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/schedule/export_pdf", scheduleController.ExportPdf, middleware.Authenticate(r.auth))

	// The sweeper lives for the whole process; the cron scheduler dies with
	// it, no shutdown hook needed.
	sweep := sweeper.New(attendancePostgres, r.redisDB, r.location, r.sweepTime)
	if err := sweep.Start(); err != nil {
		return err
	}

	return r.Run(r.port)
}
