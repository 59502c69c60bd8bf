package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hegerb/rohlik-admin/internal/domain"
	"github.com/hegerb/rohlik-admin/internal/shop"
)

var orderStatuses = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusCompleted,
	domain.OrderStatusCancelled,
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	page := ordersPage{
		basePage:     h.newBasePage(w, r, "Správa objednávek"),
		Query:        strings.TrimSpace(r.URL.Query().Get("q")),
		StatusFilter: r.URL.Query().Get("status"),
		Statuses:     orderStatuses,
	}

	orders, err := h.shop.Orders(r.Context())
	if err != nil {
		if shop.IsUnauthorized(err) {
			h.forceLogin(w, r)
			return
		}
		h.logger.Error("failed to load orders", "error", err)
		page.Error = errorMessage(err, "Nepodařilo se načíst objednávky")
		h.render(w, "orders", http.StatusOK, page)
		return
	}

	page.Orders = filterOrders(orders, page.Query, domain.OrderStatus(page.StatusFilter))
	h.render(w, "orders", http.StatusOK, page)
}

// filterOrders narrows the fetched collection by id substring and exact
// status. An empty filter passes everything through.
func filterOrders(orders []domain.Order, query string, status domain.OrderStatus) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if query != "" && !strings.Contains(strconv.FormatInt(o.ID, 10), query) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

func (h *Handler) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := domain.OrderStatus(r.PostFormValue("status"))
	if _, err := h.shop.UpdateOrderStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, shop.ErrUnsupportedStatus) {
			h.setFlash(w, Flash{Level: "error", Message: "Nepodporovaný status"})
			http.Redirect(w, r, "/orders", http.StatusSeeOther)
			return
		}
		h.logger.Error("failed to update order status", "order_id", id, "status", status, "error", err)
		h.handleShopError(w, r, err, "Nepodařilo se změnit status objednávky", "/orders")
		return
	}

	h.logger.Info("order status updated", "order_id", id, "status", status)
	h.setFlash(w, Flash{Level: "success", Message: "Status objednávky byl úspěšně změněn"})
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}
