package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

// createCategory creates a category over HTTP and returns its id.
func createCategory(t *testing.T, router http.Handler, token, name string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name": %q, "description": "test category"}`, name)
	w := doRequest(t, router, http.MethodPost, "/api/categories", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create category status = %d; body: %s", w.Code, w.Body.String())
	}

	cat, _ := decodeJSON(t, w)["category"].(map[string]any)
	id, _ := cat["id"].(string)
	if id == "" {
		t.Fatal("created category has no id")
	}
	return id
}

// createProduct creates a product over HTTP and returns its id.
func createProduct(t *testing.T, router http.Handler, token, name string, price float64) string {
	t.Helper()

	body := fmt.Sprintf(`{"name": %q, "price": %v}`, name, price)
	w := doRequest(t, router, http.MethodPost, "/api/products", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product status = %d; body: %s", w.Code, w.Body.String())
	}

	prod, _ := decodeJSON(t, w)["product"].(map[string]any)
	id, _ := prod["id"].(string)
	if id == "" {
		t.Fatal("created product has no id")
	}
	return id
}

// ─── Category Endpoint Tests ───────────────────────────────────────

func TestCategories_RequireAuth(t *testing.T) {
	router := testServer(t).buildRouter()

	w := doRequest(t, router, http.MethodGet, "/api/categories", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCategoryCRUD(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "crud@example.com")

	// Create
	w := doRequest(t, router, http.MethodPost, "/api/categories",
		`{"name": "Beverages", "description": "Drinks"}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON(t, w)
	if resp["message"] != "Category created successfully" {
		t.Errorf("message = %v", resp["message"])
	}
	cat, _ := resp["category"].(map[string]any)
	id, _ := cat["id"].(string)
	if id == "" {
		t.Fatal("no category id in create response")
	}

	// List
	w = doRequest(t, router, http.MethodGet, "/api/categories", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list is not a JSON array: %v", err)
	}
	if len(list) != 1 || list[0]["name"] != "Beverages" {
		t.Errorf("list = %v, want one Beverages category", list)
	}

	// Get
	w = doRequest(t, router, http.MethodGet, "/api/categories/"+id, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if got := decodeJSON(t, w)["description"]; got != "Drinks" {
		t.Errorf("description = %v, want Drinks", got)
	}

	// Update
	w = doRequest(t, router, http.MethodPut, "/api/categories",
		fmt.Sprintf(`{"id": %q, "name": "Soft Drinks"}`, id), token)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d; body: %s", w.Code, w.Body.String())
	}
	if got := decodeJSON(t, w)["message"]; got != "Category updated successfully" {
		t.Errorf("update message = %v", got)
	}

	w = doRequest(t, router, http.MethodGet, "/api/categories/"+id, "", token)
	if got := decodeJSON(t, w)["name"]; got != "Soft Drinks" {
		t.Errorf("name after update = %v, want Soft Drinks", got)
	}

	// Delete
	w = doRequest(t, router, http.MethodDelete, "/api/categories",
		fmt.Sprintf(`{"id": %q}`, id), token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if got := decodeJSON(t, w)["message"]; got != "Category deleted successfully" {
		t.Errorf("delete message = %v", got)
	}

	// Deleting again reports not found.
	w = doRequest(t, router, http.MethodDelete, "/api/categories",
		fmt.Sprintf(`{"id": %q}`, id), token)
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := decodeJSON(t, w)["message"]; got != "Category not found" {
		t.Errorf("repeat delete message = %v, want Category not found", got)
	}
}

func TestCategoryCreate_MissingName(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "noname@example.com")

	w := doRequest(t, router, http.MethodPost, "/api/categories", `{"description": "nameless"}`, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCategoryUpdate_MissingID(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "noid@example.com")

	w := doRequest(t, router, http.MethodPut, "/api/categories", `{"name": "No ID"}`, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCategoryGet_Unknown(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "lost@example.com")

	w := doRequest(t, router, http.MethodGet, "/api/categories/cat-missing1", "", token)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := decodeJSON(t, w)["message"]; got != "Category not found" {
		t.Errorf("message = %v, want Category not found", got)
	}
}

// Tenant B must not be able to see or touch tenant A's categories.
func TestCategories_TenantIsolation(t *testing.T) {
	router := testServer(t).buildRouter()
	tokenA := registerAndLogin(t, router, "tenant-a@example.com")
	tokenB := registerAndLogin(t, router, "tenant-b@example.com")

	id := createCategory(t, router, tokenA, "Private")

	w := doRequest(t, router, http.MethodGet, "/api/categories", "", tokenB)
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list unmarshal: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("tenant B sees %d of tenant A's categories", len(list))
	}

	w = doRequest(t, router, http.MethodGet, "/api/categories/"+id, "", tokenB)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-tenant get status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/categories",
		fmt.Sprintf(`{"id": %q}`, id), tokenB)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-tenant delete status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// Still visible to its owner.
	w = doRequest(t, router, http.MethodGet, "/api/categories/"+id, "", tokenA)
	if w.Code != http.StatusOK {
		t.Errorf("owner get after cross-tenant delete attempt status = %d", w.Code)
	}
}

// ─── Product Endpoint Tests ────────────────────────────────────────

func TestProductCRUD(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "stocker@example.com")
	categoryID := createCategory(t, router, token, "Tools")

	// Create with all fields
	body := fmt.Sprintf(
		`{"name": "Hammer", "description": "Claw hammer", "price": 15.5, "barcode": "5012345678900", "category_id": %q, "stock": 12}`,
		categoryID,
	)
	w := doRequest(t, router, http.MethodPost, "/api/products", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON(t, w)
	if resp["message"] != "Product created successfully" {
		t.Errorf("message = %v", resp["message"])
	}
	prod, _ := resp["product"].(map[string]any)
	id, _ := prod["id"].(string)
	if id == "" {
		t.Fatal("no product id in create response")
	}

	// Get joins the category name
	w = doRequest(t, router, http.MethodGet, "/api/products/"+id, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	got := decodeJSON(t, w)
	if got["category_name"] != "Tools" {
		t.Errorf("category_name = %v, want Tools", got["category_name"])
	}
	if got["price"] != 15.5 {
		t.Errorf("price = %v, want 15.5", got["price"])
	}
	if got["stock"] != float64(12) {
		t.Errorf("stock = %v, want 12", got["stock"])
	}

	// Update with stock explicitly zero
	w = doRequest(t, router, http.MethodPut, "/api/products",
		fmt.Sprintf(`{"id": %q, "name": "Hammer", "price": 14.0, "stock": 0}`, id), token)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d; body: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/api/products/"+id, "", token)
	got = decodeJSON(t, w)
	if got["stock"] != float64(0) {
		t.Errorf("stock after explicit zero = %v, want 0", got["stock"])
	}
	if got["price"] != 14.0 {
		t.Errorf("price after update = %v, want 14", got["price"])
	}

	// Delete
	w = doRequest(t, router, http.MethodDelete, "/api/products",
		fmt.Sprintf(`{"id": %q}`, id), token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/products/"+id, "", token)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := decodeJSON(t, w)["message"]; got != "Product not found" {
		t.Errorf("message = %v, want Product not found", got)
	}
}

func TestProductCreate_Defaults(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "minimal@example.com")

	w := doRequest(t, router, http.MethodPost, "/api/products",
		`{"name": "Bare", "price": 1.0}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", w.Code, w.Body.String())
	}

	prod, _ := decodeJSON(t, w)["product"].(map[string]any)
	if prod["stock"] != float64(0) {
		t.Errorf("stock = %v, want 0", prod["stock"])
	}
	if v, ok := prod["description"]; ok && v != nil {
		t.Errorf("description = %v, want null", v)
	}
}

func TestProductCreate_Validation(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "strict@example.com")

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"price": 5.0}`},
		{"missing price", `{"name": "Free"}`},
		{"empty body", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/products", tc.body, token)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

// Price zero is valid; only an absent price is rejected.
func TestProductCreate_ZeroPrice(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "freebie@example.com")

	w := doRequest(t, router, http.MethodPost, "/api/products",
		`{"name": "Sample", "price": 0}`, token)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}
}

func TestProducts_TenantIsolation(t *testing.T) {
	router := testServer(t).buildRouter()
	tokenA := registerAndLogin(t, router, "shop-a@example.com")
	tokenB := registerAndLogin(t, router, "shop-b@example.com")

	id := createProduct(t, router, tokenA, "Exclusive", 99.99)

	w := doRequest(t, router, http.MethodGet, "/api/products/"+id, "", tokenB)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-tenant get status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = doRequest(t, router, http.MethodPut, "/api/products",
		fmt.Sprintf(`{"id": %q, "name": "Stolen", "price": 0.01}`, id), tokenB)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-tenant update status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// Unchanged for its owner.
	w = doRequest(t, router, http.MethodGet, "/api/products/"+id, "", tokenA)
	if got := decodeJSON(t, w)["name"]; got != "Exclusive" {
		t.Errorf("name = %v, want Exclusive", got)
	}
}

func TestProductList_NewestFirstOverHTTP(t *testing.T) {
	router := testServer(t).buildRouter()
	token := registerAndLogin(t, router, "lister@example.com")

	createProduct(t, router, token, "First", 1)
	createProduct(t, router, token, "Second", 2)

	w := doRequest(t, router, http.MethodGet, "/api/products", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list is not a JSON array: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list = %d products, want 2", len(list))
	}
}
