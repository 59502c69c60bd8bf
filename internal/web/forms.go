package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate holds the declarative form schema shared by the views; the
// bounds mirror what the shop API enforces server-side.
var validate = validator.New(validator.WithRequiredStructEnabled())

type productForm struct {
	Name          string  `validate:"required,min=3,max=100"`
	Price         float64 `validate:"required,gt=0,lte=999999.99"`
	StockQuantity int     `validate:"min=0"`
	Version       int64
}

type loginForm struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=5"`
}

type registerForm struct {
	Username        string `validate:"required,min=3"`
	Password        string `validate:"required,min=5"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// parseProductForm extracts and validates the product form. The returned
// map is empty only when the form may be submitted upstream; a non-empty
// map blocks submission entirely.
func parseProductForm(r *http.Request) (productForm, map[string]string) {
	fieldErrors := make(map[string]string)

	form := productForm{
		Name: strings.TrimSpace(r.PostFormValue("name")),
	}

	priceRaw := strings.TrimSpace(r.PostFormValue("price"))
	if priceRaw == "" {
		fieldErrors["Price"] = "Cena je povinná"
	} else if price, err := strconv.ParseFloat(priceRaw, 64); err != nil {
		fieldErrors["Price"] = "Cena musí být kladné číslo"
	} else {
		form.Price = price
	}

	stockRaw := strings.TrimSpace(r.PostFormValue("stockQuantity"))
	if stockRaw == "" {
		fieldErrors["StockQuantity"] = "Skladové množství je povinné"
	} else if stock, err := strconv.Atoi(stockRaw); err != nil {
		fieldErrors["StockQuantity"] = "Skladové množství musí být celé číslo"
	} else {
		form.StockQuantity = stock
	}

	if versionRaw := r.PostFormValue("version"); versionRaw != "" {
		if version, err := strconv.ParseInt(versionRaw, 10, 64); err == nil {
			form.Version = version
		}
	}

	for field, message := range validationErrors(form, productMessages) {
		if _, taken := fieldErrors[field]; !taken {
			fieldErrors[field] = message
		}
	}
	return form, fieldErrors
}

func parseLoginForm(r *http.Request) (loginForm, map[string]string) {
	form := loginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	return form, validationErrors(form, authMessages)
}

func parseRegisterForm(r *http.Request) (registerForm, map[string]string) {
	form := registerForm{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	return form, validationErrors(form, authMessages)
}

// validationErrors runs the schema and translates the first failing tag
// per field into its user-facing message.
func validationErrors(form any, messages func(field, tag string) string) map[string]string {
	fieldErrors := make(map[string]string)

	err := validate.Struct(form)
	if err == nil {
		return fieldErrors
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors[""] = "Formulář se nepodařilo ověřit"
		return fieldErrors
	}

	for _, fe := range validationErrs {
		if _, taken := fieldErrors[fe.Field()]; !taken {
			fieldErrors[fe.Field()] = messages(fe.Field(), fe.Tag())
		}
	}
	return fieldErrors
}

func productMessages(field, tag string) string {
	switch field {
	case "Name":
		switch tag {
		case "required":
			return "Název produktu je povinný"
		case "min":
			return "Název musí mít alespoň 3 znaky"
		case "max":
			return "Název může mít maximálně 100 znaků"
		}
	case "Price":
		switch tag {
		case "required", "gt":
			return "Cena musí být kladné číslo"
		case "lte":
			return "Cena je příliš vysoká"
		}
	case "StockQuantity":
		if tag == "min" {
			return "Skladové množství nemůže být záporné"
		}
	}
	return "Neplatná hodnota"
}

func authMessages(field, tag string) string {
	switch field {
	case "Username":
		if tag == "required" {
			return "Uživatelské jméno je povinné"
		}
		return "Uživatelské jméno musí mít alespoň 3 znaky"
	case "Password":
		if tag == "required" {
			return "Heslo je povinné"
		}
		return "Heslo musí mít alespoň 5 znaků"
	case "ConfirmPassword":
		if tag == "required" {
			return "Potvrzení hesla je povinné"
		}
		return "Hesla se neshodují"
	}
	return "Neplatná hodnota"
}
