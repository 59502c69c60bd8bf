package web

import (
	"errors"
	"net/http"

	"github.com/hegerb/rohlik-admin/internal/shop"
)

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", http.StatusOK, loginPage{
		basePage: h.newBasePage(w, r, "Přihlášení"),
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	form, fieldErrors := parseLoginForm(r)
	if len(fieldErrors) > 0 {
		h.render(w, "login", http.StatusUnprocessableEntity, loginPage{
			basePage: h.newBasePage(w, r, "Přihlášení"),
			Form:     form,
			Errors:   fieldErrors,
		})
		return
	}

	token, err := h.shop.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		h.logger.Warn("login failed", "username", form.Username, "error", err)
		page := loginPage{
			basePage: h.newBasePage(w, r, "Přihlášení"),
			Form:     form,
		}
		page.Error = "Přihlášení selhalo"
		h.render(w, "login", http.StatusUnauthorized, page)
		return
	}

	h.sessions.Set(w, token)
	h.setFlash(w, Flash{Level: "success", Message: "Přihlášení proběhlo úspěšně"})
	h.logger.Info("user logged in", "username", form.Username)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register", http.StatusOK, registerPage{
		basePage: h.newBasePage(w, r, "Registrace"),
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	form, fieldErrors := parseRegisterForm(r)
	if len(fieldErrors) > 0 {
		h.render(w, "register", http.StatusUnprocessableEntity, registerPage{
			basePage: h.newBasePage(w, r, "Registrace"),
			Form:     form,
			Errors:   fieldErrors,
		})
		return
	}

	token, err := h.shop.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		h.logger.Warn("registration failed", "username", form.Username, "error", err)

		// Surface the server-supplied reason when there is one, e.g. a
		// duplicate username.
		message := "Registrace selhala"
		var apiErr *shop.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}

		page := registerPage{
			basePage: h.newBasePage(w, r, "Registrace"),
			Form:     form,
		}
		page.Error = message
		h.render(w, "register", http.StatusUnprocessableEntity, page)
		return
	}

	// Registration doubles as login: store the token and let the guard's
	// profile fetch fill in the user.
	h.sessions.Set(w, token)
	h.setFlash(w, Flash{Level: "success", Message: "Registrace byla úspěšná. Jste automaticky přihlášen."})
	h.logger.Info("user registered", "username", form.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	h.setFlash(w, Flash{Level: "info", Message: "Byli jste odhlášeni"})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
