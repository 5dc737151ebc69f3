package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/api/middleware"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

type editUserForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Role     string `form:"role" json:"role" validate:"required,oneof=USER ADMIN"`
}

type adminPanel struct {
	Accounts []*domain.Account `json:"accounts"`
}

// Panel lists every account with its role.
//
// @Summary      Admin panel
// @Tags         admin
// @Produce      html,json
// @Success      200  {object}  adminPanel
// @Failure      403  {object}  map[string]string
// @Router       /admin [get]
func (h *AdminHandler) Panel(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "admin", "Admin", adminPanel{Accounts: accounts})
}

// EditUser changes the role of an account.
//
// @Summary      Change an account's role
// @Tags         admin
// @Accept       x-www-form-urlencoded,json
// @Param        body  body      editUserForm  true  "Username and new role (USER or ADMIN)"
// @Success      302   {string}  string  "redirect to /admin"
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/edituser [post]
func (h *AdminHandler) EditUser(c echo.Context) error {
	var form editUserForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	actor := ""
	if p := middleware.CurrentState(c).Principal; p != nil {
		actor = p.Username
	}

	if _, err := h.accounts.SetRole(c.Request().Context(), actor, form.Username, domain.Role(form.Role)); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin")
}
