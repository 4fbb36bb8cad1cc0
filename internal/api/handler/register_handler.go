package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/praxislex/billing-console/internal/core/ports"
	"github.com/praxislex/billing-console/internal/core/state"
)

// RegisterHandler drives the sign-up flow container from the HTTP edge.
type RegisterHandler struct {
	flow *state.RegisterFlow
}

func NewRegisterHandler(flow *state.RegisterFlow) *RegisterHandler {
	return &RegisterHandler{flow: flow}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	Role      string `json:"role"       validate:"required,oneof=admin partner associate intern"`
}

// Submit validates the payload and dispatches it to the registration flow.
// The flow never surfaces an error as an HTTP failure; the response always
// carries the flow snapshot and the client reads status and error from it.
//
// @Summary      Submit a registration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up details"
// @Success      200   {object}  state.RegisterSnapshot
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *RegisterHandler) Submit(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	snap := h.flow.Submit(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	return c.JSON(http.StatusOK, snap)
}

// Reset returns the flow to idle, used when the form is edited again after a
// failed submission.
//
// @Summary      Reset the registration flow
// @Tags         auth
// @Produce      json
// @Success      200  {object}  state.RegisterSnapshot
// @Router       /auth/register/reset [post]
func (h *RegisterHandler) Reset(c echo.Context) error {
	h.flow.Reset()
	return c.JSON(http.StatusOK, h.flow.Snapshot())
}
