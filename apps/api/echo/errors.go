package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errMissingFile   = echo.NewHTTPError(http.StatusBadRequest, "missing document file")
)

// statusCodes maps the curriculum sentinel errors to their http status.
var statusCodes = map[error]int{
	curriculum.ErrSubjectNotFound:        http.StatusNotFound,
	curriculum.ErrClassNotFound:          http.StatusNotFound,
	curriculum.ErrDocumentNotFound:       http.StatusNotFound,
	curriculum.ErrInvalidDocument:        http.StatusBadRequest,
	curriculum.ErrMalformedMetadataRows:  http.StatusBadRequest,
	curriculum.ErrNoPhaseHeaderDetected:  http.StatusBadRequest,
	curriculum.ErrInvalidSheetStructure:  http.StatusBadRequest,
	curriculum.ErrInvalidClassNameFormat: http.StatusBadRequest,
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *curriculum.SheetNotFoundError:
			code = http.StatusNotFound
			message = echo.Map{
				"error":      origErr.Error(),
				"wanted":     origErr.Wanted,
				"available":  origErr.Available,
				"suggestion": origErr.Suggestion,
			}
		case *workbook.UnknownColumnError:
			code = http.StatusBadRequest
			message = echo.Map{
				"error":   origErr.Error(),
				"unknown": origErr.Unknown,
				"valid":   origErr.Valid,
			}
		default:
			if c, ok := statusCodes[cause]; ok {
				code = c
				message = cause.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			args := []interface{}{errors.Wrap(err, msg)}
			if person, ok := contextPerson(ctx); ok {
				args = append(args, person)
			}
			logger.Error(msg, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
