package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/cart"
	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/pkg/response"
)

// newCartRouter wires a cart handler over a fake remote API that serves
// one event with a single ticket type (id 10, 3 tickets left).
func newCartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/1" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"event not found"}`))
			return
		}
		w.Write([]byte(`{"event":{"id":1,"title":"Jazz Night","tickets":[
			{"id":10,"type":"Standard","price":2500,"quantity_total":5,"quantity_sold":2,"is_active":true},
			{"id":11,"type":"Early Bird","price":1500,"quantity_total":20,"quantity_sold":0,"is_active":false}
		]}}`))
	}))
	t.Cleanup(remote.Close)

	client := gateway.NewClient(remote.URL, 5*time.Second, nil, zap.NewNop())
	handler := NewCartHandler(cart.New(cart.NopNotifier{}), gateway.NewEventService(client), zap.NewNop())

	router := gin.New()
	handler.Register(router.Group("/api"), nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Body) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope response.Body
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, envelope
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("reserves against a fresh snapshot", func(t *testing.T) {
		router := newCartRouter(t)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/cart/items",
			`{"event_id":1,"ticket_id":10,"quantity":2}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if !envelope.Success {
			t.Errorf("envelope = %+v", envelope)
		}
	})

	t.Run("over availability answers conflict", func(t *testing.T) {
		router := newCartRouter(t)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/cart/items",
			`{"event_id":1,"ticket_id":10,"quantity":4}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		if envelope.Error != "only 3 tickets available" {
			t.Errorf("error = %q", envelope.Error)
		}
	})

	t.Run("inactive ticket type answers conflict", func(t *testing.T) {
		router := newCartRouter(t)

		rec, _ := doJSON(t, router, http.MethodPost, "/api/cart/items",
			`{"event_id":1,"ticket_id":11,"quantity":1}`)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("unknown event answers not found", func(t *testing.T) {
		router := newCartRouter(t)

		rec, _ := doJSON(t, router, http.MethodPost, "/api/cart/items",
			`{"event_id":99,"ticket_id":10,"quantity":1}`)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("incomplete body answers bad request", func(t *testing.T) {
		router := newCartRouter(t)

		rec, _ := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"event_id":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCartHandler_Flow(t *testing.T) {
	router := newCartRouter(t)

	if rec, _ := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"event_id":1,"ticket_id":10,"quantity":2}`); rec.Code != http.StatusOK {
		t.Fatalf("add status = %d", rec.Code)
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view status = %d", rec.Code)
	}
	view, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("view data = %T", envelope.Data)
	}
	if view["total_items"] != float64(2) || view["total_price"] != float64(5000) {
		t.Errorf("view = %+v", view)
	}

	if rec, _ := doJSON(t, router, http.MethodPut, "/api/cart/items/10", `{"quantity":1}`); rec.Code != http.StatusOK {
		t.Errorf("update status = %d", rec.Code)
	}

	if rec, _ := doJSON(t, router, http.MethodDelete, "/api/cart/items/10", ""); rec.Code != http.StatusOK {
		t.Errorf("remove status = %d", rec.Code)
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view status = %d", rec.Code)
	}
	view = envelope.Data.(map[string]any)
	if view["total_items"] != float64(0) {
		t.Errorf("cart not empty after removal: %+v", view)
	}

	if rec, _ := doJSON(t, router, http.MethodDelete, "/api/cart", ""); rec.Code != http.StatusNoContent {
		t.Errorf("clear status = %d", rec.Code)
	}
}
