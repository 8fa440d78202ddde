package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"course-upgrade-service/internal/dto"
	"course-upgrade-service/internal/router"
	"course-upgrade-service/internal/service"
	"course-upgrade-service/internal/upgrade"
)

type UpgradeHandler struct {
	helper  *upgrade.Helper
	session *service.UpgradeSession
	store   upgrade.RecordStore
	router  *router.WSRouter
}

func NewUpgradeHandler(
	helper *upgrade.Helper,
	session *service.UpgradeSession,
	store upgrade.RecordStore,
	router *router.WSRouter,
) *UpgradeHandler {
	return &UpgradeHandler{
		helper:  helper,
		session: session,
		store:   store,
		router:  router,
	}
}

// SetContext stores the purchase context for the next attempt.
func (h *UpgradeHandler) SetContext(c echo.Context) error {
	var req dto.UpgradeContextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "course_id is required")
	}

	screen := upgrade.Screen(req.Screen)
	if screen == "" {
		screen = upgrade.ScreenUnknown
	}

	h.helper.SetData(req.CourseID, upgrade.Pacing(req.Pacing), req.BlockID, req.LocalizedPrice, screen)
	return c.NoContent(http.StatusNoContent)
}

// PostState delivers one pipeline transition reported by the client app.
func (h *UpgradeHandler) PostState(c echo.Context) error {
	var req dto.StateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	state, err := stateFromRequest(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.session.Apply(state, upgrade.Mode(req.Mode), req.SKU)
	h.helper.HandleUpgrade(c.Request().Context(), h.session, state, nil)
	return c.NoContent(http.StatusNoContent)
}

// GetRecord returns the pending in-progress purchase, or 404 when none.
func (h *UpgradeHandler) GetRecord(c echo.Context) error {
	rec, err := h.store.Load(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load record")
	}
	if rec == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no purchase in progress")
	}

	return c.JSON(http.StatusOK, dto.RecordResponse{
		CourseID: rec.CourseID,
		SKU:      rec.SKU,
		Pacing:   string(rec.Pacing),
	})
}

// PostAlertAction resolves the user's choice on a presented alert.
func (h *UpgradeHandler) PostAlertAction(c echo.Context) error {
	var req dto.AlertActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.router.HandleAlertAction(req.AlertID, req.Action); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

var errorKinds = map[string]upgrade.ErrorKind{
	"payments_not_available": upgrade.ErrPaymentsNotAvailable,
	"payment_error":          upgrade.ErrPayment,
	"receipt_not_available":  upgrade.ErrReceiptNotAvailable,
	"basket_error":           upgrade.ErrBasket,
	"checkout_error":         upgrade.ErrCheckout,
	"verify_receipt_error":   upgrade.ErrVerifyReceipt,
	"product_not_exist":      upgrade.ErrProductNotExist,
	"general_error":          upgrade.ErrGeneral,
}

func stateFromRequest(req *dto.StateEventRequest) (upgrade.State, error) {
	switch upgrade.StateKind(req.State) {
	case upgrade.StateInitial:
		return upgrade.Initial(), nil
	case upgrade.StateBasket:
		return upgrade.Basket(), nil
	case upgrade.StatePayment:
		return upgrade.Payment(), nil
	case upgrade.StateFulfillment:
		return upgrade.Fulfillment(req.ShowLoader), nil
	case upgrade.StateComplete:
		return upgrade.Complete(), nil
	case upgrade.StateSuccess:
		if req.CourseID == "" {
			return upgrade.State{}, fmt.Errorf("success state requires course_id")
		}
		return upgrade.Success(req.CourseID, req.ComponentID), nil
	case upgrade.StateError:
		kind, ok := errorKinds[req.ErrorKind]
		if !ok {
			return upgrade.State{}, fmt.Errorf("unknown error_kind %q", req.ErrorKind)
		}
		var cause *upgrade.Cause
		if req.Cause != nil {
			cause = &upgrade.Cause{
				Code:      req.Cause.Code,
				Message:   req.Cause.Message,
				Cancelled: req.Cause.Cancelled,
			}
		}
		return upgrade.Failed(upgrade.NewError(kind, cause)), nil
	default:
		return upgrade.State{}, fmt.Errorf("unknown state %q", req.State)
	}
}
