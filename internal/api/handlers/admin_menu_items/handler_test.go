package admin_menu_items

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RestaurantService/internal/service/menu"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListItems(ctx context.Context, req *models.FilterRequest) (*models.MenuItemListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.MenuItemListResponse)
	return resp, args.Error(1)
}

func (m *mockService) CreateItem(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItemResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.MenuItemResponse)
	return resp, args.Error(1)
}

func (m *mockService) UpdateItem(ctx context.Context, id int64, req *models.MenuItemRequest) (*models.MenuItemResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.MenuItemResponse)
	return resp, args.Error(1)
}

func (m *mockService) ToggleItem(ctx context.Context, id int64) (*models.ToggleResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ToggleResponse)
	return resp, args.Error(1)
}

func (m *mockService) ReorderItems(ctx context.Context, req *models.ReorderRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockService) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc *mockService) http.Handler {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/menu-items", h.List).Methods(http.MethodGet)
	r.HandleFunc("/menu-items", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/menu-items/reorder", h.Reorder).Methods(http.MethodPost)
	r.HandleFunc("/menu-items/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/menu-items/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/menu-items/{id}/toggle", h.Toggle).Methods(http.MethodPatch)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestHandler_List(t *testing.T) {
	svc := &mockService{}
	svc.On("ListItems", mock.Anything, &models.FilterRequest{Category: "mains", Vegetarian: true}).
		Return(&models.MenuItemListResponse{Items: []models.MenuItemResponse{}}, nil)
	r := setupRouter(svc)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/menu-items?category=mains&vegetarian=true", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/menu-items?vegetarian=yes-please", "").Code)
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateItem", mock.Anything, mock.MatchedBy(func(req *models.MenuItemRequest) bool {
		return req.Name == "Ratatouille" && req.CategoryID == 2 && req.IsAvailable == nil
	})).Return(&models.MenuItemResponse{ID: 11, Name: "Ratatouille", IsAvailable: true}, nil)
	svc.On("CreateItem", mock.Anything, mock.MatchedBy(func(req *models.MenuItemRequest) bool {
		return req.CategoryID == 99
	})).Return(nil, menu.ErrCategoryNotFound)
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/menu-items", `{"categoryId":2,"name":"Ratatouille","price":18.5,"dietaryTags":["vegetarian"]}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/menu-items", `{"categoryId":99,"name":"Ghost","price":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/menu-items", `{"categoryId":2,"name":"Soup","price":"cheap"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ToggleAndDelete(t *testing.T) {
	svc := &mockService{}
	svc.On("ToggleItem", mock.Anything, int64(5)).Return(&models.ToggleResponse{ID: 5, IsAvailable: false}, nil)
	svc.On("DeleteItem", mock.Anything, int64(6)).Return(menu.ErrItemNotFound)
	r := setupRouter(svc)

	w := do(r, http.MethodPatch, "/menu-items/5/toggle", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAvailable":false`)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/menu-items/6", "").Code)
}

func TestHandler_Reorder(t *testing.T) {
	svc := &mockService{}
	svc.On("ReorderItems", mock.Anything, &models.ReorderRequest{Items: []int64{3, 1, 2}}).Return(nil)
	svc.On("ReorderItems", mock.Anything, &models.ReorderRequest{Items: []int64{}}).Return(menu.ErrInvalidInput)
	r := setupRouter(svc)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPost, "/menu-items/reorder", `{"items":[3,1,2]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/menu-items/reorder", `{"items":[]}`).Code)
}
