package web

import (
	"net/http"

	"github.com/hegerb/rohlik-admin/internal/domain"
	"github.com/hegerb/rohlik-admin/internal/session"
)

// basePage carries what the layout needs: the verified user for the
// navbar (nil on the public pages), the pending flash, and an inline
// error for failures that must render immediately instead of surviving
// a redirect.
type basePage struct {
	Title string
	User  *domain.User
	Flash *Flash
	Error string
}

func (h *Handler) newBasePage(w http.ResponseWriter, r *http.Request, title string) basePage {
	user, _ := session.UserFromContext(r.Context())
	return basePage{
		Title: title,
		User:  user,
		Flash: h.popFlash(w, r),
	}
}

type loginPage struct {
	basePage
	Form   loginForm
	Errors map[string]string
}

type registerPage struct {
	basePage
	Form   registerForm
	Errors map[string]string
}

type productsPage struct {
	basePage
	Products []domain.Product
	Query    string
}

type productFormPage struct {
	basePage
	Form    productForm
	Errors  map[string]string
	Editing bool
	ID      int64
}

type ordersPage struct {
	basePage
	Orders       []domain.Order
	Query        string
	StatusFilter string
	Statuses     []domain.OrderStatus
}
