package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/bursary/core/document"
)

const documentRefHeader = "X-Document-Reference"

type documentApi struct {
	svc document.ServiceInterface
}

func registerDocumentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc document.ServiceInterface) {
	api := documentApi{svc: svc}

	g.GET("/documents/:kind/:matricule", api.issue, jwt, adminMiddleware())
	g.GET("/students/:matricule/documents", api.issued, jwt, adminMiddleware())
}

func (api *documentApi) issue(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	doc, err := api.svc.Issue(ctx.Request().Context(), ctx.Param("matricule"), document.Kind(ctx.Param("kind")), actor)
	if err != nil {
		return errors.Wrap(err, "issuing document")
	}
	ctx.Response().Header().Set(documentRefHeader, doc.Reference)
	return ctx.Blob(http.StatusOK, doc.ContentType, doc.Content)
}

func (api *documentApi) issued(ctx echo.Context) error {
	certs, err := api.svc.Issued(ctx.Request().Context(), ctx.Param("matricule"))
	if err != nil {
		return errors.Wrap(err, "listing documents")
	}
	return ctx.JSON(http.StatusOK, certs)
}
