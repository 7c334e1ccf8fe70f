package echoapi

import (
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/raihan7913/devsecop-sub001/core/curriculum"
)

const (
	documentField = "file"
	xlsxMIMEType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type curriculumApi struct {
	svc      *curriculum.Service
	validate *validator.Validate
}

func registerCurriculumAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *curriculum.Service, validate *validator.Validate) {
	api := curriculumApi{
		svc:      svc,
		validate: validate,
	}

	cg := g.Group("/curriculum", jwt)
	cg.POST("/import", api.importDocument, adminMiddleware())

	sg := g.Group("/subjects/:subjectID/phases", jwt)
	sg.GET("", api.listPhases)

	pg := sg.Group("/:phase")
	pg.GET("/document", api.downloadDocument)
	pg.GET("/objectives", api.getObjectives)
	pg.PUT("/objectives", api.updateObjectives, adminMiddleware())
	pg.GET("/objectives/filter", api.filterObjectives)
}

// Handlers

func (api *curriculumApi) importDocument(ctx echo.Context) error {
	fh, err := ctx.FormFile(documentField)
	if err != nil {
		return errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}

	result, err := api.svc.Import(ctx.Request().Context(), data, fh.Filename)
	if err != nil {
		return errors.Wrap(err, "importing curriculum document")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (api *curriculumApi) listPhases(ctx echo.Context) error {
	subjectID, err := parseInt(ctx.Param(subjectIDParam), "subject_id")
	if err != nil {
		return err
	}
	descs, err := api.svc.ListPhases(ctx.Request().Context(), subjectID)
	if err != nil {
		return errors.Wrap(err, "listing phases")
	}
	return ctx.JSON(http.StatusOK, descs)
}

func (api *curriculumApi) downloadDocument(ctx echo.Context) error {
	params, err := api.bindPhaseParams(ctx)
	if err != nil {
		return err
	}
	doc, err := api.svc.OpenDocument(ctx.Request().Context(), params.SubjectID, params.phase())
	if err != nil {
		return errors.Wrap(err, "opening document")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Name))
	return ctx.Blob(http.StatusOK, xlsxMIMEType, doc.Data)
}

func (api *curriculumApi) getObjectives(ctx echo.Context) error {
	params, err := api.bindPhaseParams(ctx)
	if err != nil {
		return err
	}
	sheet, err := api.svc.GetObjectives(ctx.Request().Context(), params.SubjectID, params.phase())
	if err != nil {
		return errors.Wrap(err, "getting objectives")
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *curriculumApi) updateObjectives(ctx echo.Context) error {
	params, err := api.bindPhaseParams(ctx)
	if err != nil {
		return err
	}
	var data UpdateObjectivesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateObjectivesRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sheet, err := api.svc.UpdateObjectives(ctx.Request().Context(), params.SubjectID, params.phase(), data.Records)
	if err != nil {
		return errors.Wrap(err, "updating objectives")
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *curriculumApi) filterObjectives(ctx echo.Context) error {
	params, err := api.bindPhaseParams(ctx)
	if err != nil {
		return err
	}
	var query FilterQuery
	if err := query.Bind(ctx); err != nil {
		return err
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}

	result, err := api.svc.FilterObjectives(
		ctx.Request().Context(), params.SubjectID, params.phase(), query.ClassID, query.Semester,
	)
	if err != nil {
		return errors.Wrap(err, "filtering objectives")
	}
	return ctx.JSON(http.StatusOK, result)
}

// Helpers

func (api *curriculumApi) bindPhaseParams(ctx echo.Context) (PhaseParams, error) {
	var params PhaseParams
	if err := params.Bind(ctx); err != nil {
		return params, err
	}
	if err := params.Validate(api.validate); err != nil {
		return params, err
	}
	return params, nil
}
