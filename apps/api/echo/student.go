package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/bursary/core/payment"
	"github.com/trezcool/bursary/core/student"
	"github.com/trezcool/bursary/core/user"
)

type studentApi struct {
	svc    student.ServiceInterface
	pmtSvc payment.ServiceInterface
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc student.ServiceInterface, pmtSvc payment.ServiceInterface) {
	api := studentApi{svc: svc, pmtSvc: pmtSvc}

	sg := g.Group("/students", jwt, adminMiddleware())
	sg.GET("", api.query)
	sg.POST("", api.create, adminMiddleware(user.RoleAdminOwner, user.RoleAdminPrincipal, user.RoleAdminBursar))

	// detail endpoints
	sg.GET("/:matricule", api.statement)
	sg.GET("/:matricule/payments", api.payments)
	sg.GET("/:matricule/reconciliation", api.reconcile)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := &student.QueryFilter{Search: ctx.QueryParam("search")}
	for _, s := range bindStatuses(ctx) {
		filter.Statuses = append(filter.Statuses, student.Status(s))
	}
	filter.Clean()

	students, err := api.svc.Query(ctx.Request().Context(), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) statement(ctx echo.Context) error {
	stmt, err := api.pmtSvc.Statement(ctx.Request().Context(), ctx.Param("matricule"))
	if err != nil {
		return errors.Wrap(err, "building statement")
	}
	return ctx.JSON(http.StatusOK, stmt)
}

func (api *studentApi) payments(ctx echo.Context) error {
	pmts, err := api.pmtSvc.History(ctx.Request().Context(), ctx.Param("matricule"))
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if pmts == nil {
		pmts = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, pmts)
}

func (api *studentApi) reconcile(ctx echo.Context) error {
	rec, err := api.pmtSvc.Reconcile(ctx.Request().Context(), ctx.Param("matricule"))
	if err != nil {
		return errors.Wrap(err, "reconciling")
	}
	return ctx.JSON(http.StatusOK, ReconciliationResponse{Reconciliation: rec, Balanced: rec.Balanced()})
}

type ReconciliationResponse struct {
	payment.Reconciliation
	Balanced bool `json:"balanced"`
}
