package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hegerb/rohlik-admin/internal/domain"
	"github.com/hegerb/rohlik-admin/internal/shop"
)

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	page := productsPage{
		basePage: h.newBasePage(w, r, "Správa produktů"),
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
	}

	products, err := h.shop.Products(r.Context())
	if err != nil {
		if shop.IsUnauthorized(err) {
			h.forceLogin(w, r)
			return
		}
		h.logger.Error("failed to load products", "error", err)
		// Fetch failure leaves the list empty; the page stays usable.
		page.Error = errorMessage(err, "Nepodařilo se načíst produkty")
		h.render(w, "products", http.StatusOK, page)
		return
	}

	page.Products = filterProducts(products, page.Query)
	h.render(w, "products", http.StatusOK, page)
}

// filterProducts applies the pure client-side name filter; the server is
// never asked to search.
func filterProducts(products []domain.Product, query string) []domain.Product {
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (h *Handler) handleProductNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, "product_form", http.StatusOK, productFormPage{
		basePage: h.newBasePage(w, r, "Přidat nový produkt"),
	})
}

func (h *Handler) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	form, fieldErrors := parseProductForm(r)
	if len(fieldErrors) > 0 {
		// Local validation blocks submission; the shop API is not called.
		h.render(w, "product_form", http.StatusUnprocessableEntity, productFormPage{
			basePage: h.newBasePage(w, r, "Přidat nový produkt"),
			Form:     form,
			Errors:   fieldErrors,
		})
		return
	}

	input := domain.ProductInput{
		Name:          form.Name,
		Price:         form.Price,
		StockQuantity: form.StockQuantity,
	}
	product, err := h.shop.CreateProduct(r.Context(), input)
	if err != nil {
		if shop.IsUnauthorized(err) {
			h.forceLogin(w, r)
			return
		}
		h.logger.Error("failed to create product", "error", err)
		page := productFormPage{
			basePage: h.newBasePage(w, r, "Přidat nový produkt"),
			Form:     form,
		}
		page.Error = errorMessage(err, "Nepodařilo se uložit produkt")
		h.render(w, "product_form", http.StatusBadGateway, page)
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	h.setFlash(w, Flash{Level: "success", Message: "Produkt byl úspěšně vytvořen"})
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) handleProductEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.shop.Product(r.Context(), id)
	if err != nil {
		h.handleShopError(w, r, err, "Nepodařilo se načíst produkt", "/products")
		return
	}

	h.render(w, "product_form", http.StatusOK, productFormPage{
		basePage: h.newBasePage(w, r, "Upravit produkt"),
		Form: productForm{
			Name:          product.Name,
			Price:         product.Price,
			StockQuantity: product.StockQuantity,
			Version:       product.Version,
		},
		Editing: true,
		ID:      product.ID,
	})
}

func (h *Handler) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	form, fieldErrors := parseProductForm(r)
	if len(fieldErrors) > 0 {
		h.render(w, "product_form", http.StatusUnprocessableEntity, productFormPage{
			basePage: h.newBasePage(w, r, "Upravit produkt"),
			Form:     form,
			Errors:   fieldErrors,
			Editing:  true,
			ID:       id,
		})
		return
	}

	input := domain.ProductInput{
		Name:          form.Name,
		Price:         form.Price,
		StockQuantity: form.StockQuantity,
	}
	if _, err := h.shop.UpdateProduct(r.Context(), id, input, form.Version); err != nil {
		if shop.IsUnauthorized(err) {
			h.forceLogin(w, r)
			return
		}
		h.logger.Error("failed to update product", "product_id", id, "error", err)
		page := productFormPage{
			basePage: h.newBasePage(w, r, "Upravit produkt"),
			Form:     form,
			Editing:  true,
			ID:       id,
		}
		page.Error = errorMessage(err, "Nepodařilo se uložit produkt")
		h.render(w, "product_form", http.StatusBadGateway, page)
		return
	}

	h.logger.Info("product updated", "product_id", id)
	h.setFlash(w, Flash{Level: "success", Message: "Produkt byl úspěšně upraven"})
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.shop.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Error("failed to delete product", "product_id", id, "error", err)
		h.handleShopError(w, r, err, "Nepodařilo se smazat produkt", "/products")
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	h.setFlash(w, Flash{Level: "success", Message: "Produkt byl úspěšně smazán"})
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}
