package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/payment"
	"github.com/trezcool/bursary/core/user"
)

const paymentRecordedMsg = "payment recorded"

type paymentApi struct {
	svc        payment.ServiceInterface
	translator ut.Translator
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc payment.ServiceInterface, translator ut.Translator) {
	api := paymentApi{svc: svc, translator: translator}

	pg := g.Group("/payments", jwt)
	pg.POST("", api.record, adminMiddleware(user.RoleAdminOwner, user.RoleAdminPrincipal, user.RoleAdminBursar))
}

type RecordPaymentResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *payment.Result   `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (api *paymentApi) record(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return api.failure(core.NewValidationError(errors.New("malformed payment request")))
	}

	res, err := api.svc.RecordPayment(ctx.Request().Context(), data, actor)
	if err != nil {
		return api.failure(err)
	}
	return ctx.JSON(http.StatusCreated, RecordPaymentResponse{
		Success: true,
		Message: paymentRecordedMsg,
		Data:    &res,
	})
}

// failure wraps a recorder rejection into the payment response envelope.
// Unexpected errors are left to the app error handler.
func (api *paymentApi) failure(err error) error {
	resp := RecordPaymentResponse{Success: false}
	var code int

	switch cause := errors.Cause(err).(type) {
	case *core.ValidationError:
		code = http.StatusBadRequest
		resp.Message = cause.Error()
		resp.Errors = fieldErrors(cause)
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		resp.Errors = translateErrors(cause, api.translator)
		resp.Message = "invalid payment"
	default:
		if status, ok := sentinelStatus(cause); ok {
			code = status
		} else if cause == payment.ErrPersistence {
			code = http.StatusInternalServerError
		} else {
			return err
		}
		resp.Message = cause.Error()
	}
	return &echo.HTTPError{Code: code, Message: resp, Internal: err}
}
