package wizard

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/common/apperr"
)

// ConfigFactory builds the per-request wizard config: the draft key comes
// from the session (or an anonymous draft key for pre-auth flows), the rest
// from the owning service.
type ConfigFactory func(c echo.Context) (Config, error)

// FlowController exposes one wizard flow over HTTP: state, advance,
// retreat, reset, submit. The wizard itself is rebuilt from the draft store
// on every request.
type FlowController struct {
	Factory ConfigFactory
}

func NewFlowController(factory ConfigFactory) *FlowController {
	return &FlowController{Factory: factory}
}

type fieldsRequest struct {
	Fields Form `json:"fields"`
}

func (fc *FlowController) load(c echo.Context) (*Wizard, error) {
	cfg, err := fc.Factory(c)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func stateData(w *Wizard, errs map[string]string) map[string]interface{} {
	return map[string]interface{}{
		"step":      w.Step(),
		"step_name": w.StepName(),
		"form":      w.Form(),
		"errors":    errs,
		"finished":  w.Finished(),
		"result":    w.Result(),
	}
}

func fail(c echo.Context, err error) error {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		sentry.CaptureException(err)
	}
	return c.JSON(apperr.HTTPStatus(code), map[string]interface{}{
		"status":  apperr.HTTPStatus(code),
		"message": apperr.Message(err),
		"data":    map[string]interface{}{"code": string(code)},
	})
}

// State returns the draft as last persisted, so a reload lands the user on
// the exact step and fields they left.
func (fc *FlowController) State(c echo.Context) error {
	w, err := fc.load(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Draft state retrieved",
		"data":    stateData(w, nil),
	})
}

func (fc *FlowController) Advance(c echo.Context) error {
	w, err := fc.load(c)
	if err != nil {
		return fail(c, err)
	}
	var req fieldsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	w.Set(req.Fields)
	errs, err := w.Advance()
	if err != nil {
		return fail(c, err)
	}
	msg := "Moved to the next step"
	status := http.StatusOK
	if len(errs) > 0 {
		msg = "Please fix the highlighted fields"
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": msg,
		"data":    stateData(w, errs),
	})
}

func (fc *FlowController) Retreat(c echo.Context) error {
	w, err := fc.load(c)
	if err != nil {
		return fail(c, err)
	}
	var req fieldsRequest
	if err := c.Bind(&req); err == nil {
		w.Set(req.Fields)
	}
	if err := w.Retreat(); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Moved to the previous step",
		"data":    stateData(w, nil),
	})
}

func (fc *FlowController) Reset(c echo.Context) error {
	w, err := fc.load(c)
	if err != nil {
		return fail(c, err)
	}
	if err := w.Reset(); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Draft cleared",
		"data":    stateData(w, nil),
	})
}

func (fc *FlowController) Submit(c echo.Context) error {
	w, err := fc.load(c)
	if err != nil {
		return fail(c, err)
	}
	var req fieldsRequest
	if err := c.Bind(&req); err == nil {
		w.Set(req.Fields)
	}
	errs, err := w.Submit(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  http.StatusUnprocessableEntity,
			"message": "Please fix the highlighted fields",
			"data":    stateData(w, errs),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Submitted successfully",
		"data":    stateData(w, nil),
	})
}
