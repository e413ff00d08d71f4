package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"homeserve-backend/models"
	"homeserve-backend/utils"
)

func timeNowDate() string {
	return time.Now().Format(utils.ScheduleDateLayout)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Service{},
		&models.ServiceAddOn{},
		&models.Booking{},
		&models.BookingItem{},
		&models.PaymentTransaction{},
		&models.ReminderLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return SetupRouter(db), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

// createUser writes a user directly (the register endpoint only issues
// customers) and logs it in through the API.
func createUser(t *testing.T, r *gin.Engine, db *gorm.DB, email string, role models.UserRole) string {
	t.Helper()
	user := models.User{
		Email:    email,
		Name:     "Test " + string(role),
		Password: "password123",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["access_token"].(string)
	if token == "" {
		t.Fatalf("login %s: missing access_token", email)
	}
	return token
}

func seedCleaningService(t *testing.T, db *gorm.DB) (serviceID, waxID uuid.UUID) {
	t.Helper()
	serviceID = uuid.New()
	waxID = uuid.New()
	service := models.Service{
		ID:        serviceID,
		Name:      "Car Detailing",
		Slug:      "car-detailing",
		BasePrice: 100,
		Duration:  60,
		Category:  "Cleaning",
		Status:    models.ServiceActive,
		AddOns: []models.ServiceAddOn{
			{ID: waxID, ServiceID: serviceID, Name: "Wax", Price: 20},
			{ID: uuid.New(), ServiceID: serviceID, Name: "Polish", Price: 15},
		},
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return serviceID, waxID
}

func createAddress(t *testing.T, r *gin.Engine, token string) uuid.UUID {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/account/addresses", token, gin.H{
		"name":        "Home",
		"phone":       "+919876543210",
		"addressLine": "12 Lake Road",
		"city":        "Pune",
		"pincode":     "411001",
		"isDefault":   true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create address: %d %s", w.Code, w.Body.String())
	}
	id, err := uuid.Parse(decodeBody(t, w)["id"].(string))
	if err != nil {
		t.Fatalf("parse address id: %v", err)
	}
	return id
}

func TestRegisterAndLoginFlow(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "jo@example.com",
		"name":     "Jo",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "customer", created["role"])
	assert.NotContains(t, w.Body.String(), "password123")

	// Duplicate email is rejected
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "jo@example.com",
		"name":     "Jo Again",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jo@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct login, then /me
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jo@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["access_token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jo@example.com", decodeBody(t, w)["email"])
}

func TestQuoteEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)
	serviceID, waxID := seedCleaningService(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/quote", "", gin.H{
		"items": []gin.H{{
			"serviceId":      serviceID,
			"quantity":       2,
			"selectedAddons": []string{waxID.String(), uuid.NewString()},
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 240.0, body["totalAmount"])

	breakdown := body["breakdown"].([]interface{})
	assert.Len(t, breakdown, 1)
	line := breakdown[0].(map[string]interface{})
	assert.Equal(t, "Car Detailing", line["serviceName"])
	assert.Equal(t, 200.0, line["baseSubtotal"])
	assert.Equal(t, 240.0, line["lineTotal"])

	// The unknown add-on id is silently skipped
	addOns := line["addons"].([]interface{})
	assert.Len(t, addOns, 1)
	applied := addOns[0].(map[string]interface{})
	assert.Equal(t, waxID.String(), applied["id"])
	assert.Equal(t, 40.0, applied["subtotal"])
}

func TestQuoteEndpoint_DefaultsQuantityToOne(t *testing.T) {
	r, db := setupTestRouter(t)
	serviceID, _ := seedCleaningService(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/quote", "", gin.H{
		"items": []gin.H{{"serviceId": serviceID}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100.0, decodeBody(t, w)["totalAmount"])
}

func TestQuoteEndpoint_UnknownService(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/quote", "", gin.H{
		"items": []gin.H{{"serviceId": uuid.New(), "quantity": 1}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteEndpoint_NegativeQuantity(t *testing.T) {
	r, db := setupTestRouter(t)
	serviceID, _ := seedCleaningService(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/quote", "", gin.H{
		"items": []gin.H{{"serviceId": serviceID, "quantity": -2}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBooking_FreezesTotal(t *testing.T) {
	r, db := setupTestRouter(t)
	serviceID, waxID := seedCleaningService(t, db)
	token := createUser(t, r, db, "customer@example.com", models.RoleCustomer)
	addressID := createAddress(t, r, token)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"addressId":     addressID,
		"scheduledDate": "2026-09-20",
		"scheduledTime": "10:00",
		"items": []gin.H{{
			"serviceId":      serviceID,
			"quantity":       2,
			"selectedAddons": []string{waxID.String()},
		}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, 240.0, created["totalAmount"])
	bookingID := created["id"].(string)

	// Raise the catalog price after the fact
	err := db.Model(&models.Service{}).Where("id = ?", serviceID).
		Update("base_price", 999).Error
	assert.NoError(t, err)

	// The stored booking keeps the total it committed to
	w = doJSON(t, r, http.MethodGet, "/api/bookings/"+bookingID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 240.0, decodeBody(t, w)["totalAmount"])

	// A fresh quote reflects the new price
	w = doJSON(t, r, http.MethodPost, "/api/bookings/quote", "", gin.H{
		"items": []gin.H{{"serviceId": serviceID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 999.0, decodeBody(t, w)["totalAmount"])
}

func TestCreateBooking_RequiresAuth(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", "", gin.H{
		"addressId":     uuid.New(),
		"scheduledDate": "2026-09-20",
		"scheduledTime": "10:00",
		"items":         []gin.H{{"serviceId": uuid.New()}},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBooking_UnknownServiceCreatesNothing(t *testing.T) {
	r, db := setupTestRouter(t)
	token := createUser(t, r, db, "customer@example.com", models.RoleCustomer)
	addressID := createAddress(t, r, token)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"addressId":     addressID,
		"scheduledDate": "2026-09-20",
		"scheduledTime": "10:00",
		"items":         []gin.H{{"serviceId": uuid.New(), "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetBooking_AccessControl(t *testing.T) {
	r, db := setupTestRouter(t)
	serviceID, _ := seedCleaningService(t, db)
	ownerToken := createUser(t, r, db, "owner@example.com", models.RoleCustomer)
	otherToken := createUser(t, r, db, "other@example.com", models.RoleCustomer)
	staffToken := createUser(t, r, db, "staff@example.com", models.RoleStaff)
	addressID := createAddress(t, r, ownerToken)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", ownerToken, gin.H{
		"addressId":     addressID,
		"scheduledDate": "2026-09-20",
		"scheduledTime": "10:00",
		"items":         []gin.H{{"serviceId": serviceID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	bookingID := decodeBody(t, w)["id"].(string)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/bookings/"+bookingID, ownerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodGet, "/api/bookings/"+bookingID, otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/bookings/"+bookingID, staffToken, nil).Code)
}

func TestAdminRoutes_RoleGate(t *testing.T) {
	r, db := setupTestRouter(t)
	customerToken := createUser(t, r, db, "customer@example.com", models.RoleCustomer)
	adminToken := createUser(t, r, db, "admin@example.com", models.RoleAdmin)

	assert.Equal(t, http.StatusForbidden,
		doJSON(t, r, http.MethodGet, "/api/admin/bookings", customerToken, nil).Code)
	assert.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodGet, "/api/admin/bookings", adminToken, nil).Code)

	w := doJSON(t, r, http.MethodPost, "/api/admin/services", adminToken, gin.H{
		"name":      "Pest Control",
		"slug":      "pest-control",
		"basePrice": 250,
		"duration":  45,
		"addOns":    []gin.H{{"name": "Outdoor Perimeter", "price": 60}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "active", decodeBody(t, w)["status"])
}

func TestAdminUpdateBookingStatus(t *testing.T) {
	r, db := setupTestRouter(t)
	serviceID, _ := seedCleaningService(t, db)
	customerToken := createUser(t, r, db, "customer@example.com", models.RoleCustomer)
	adminToken := createUser(t, r, db, "admin@example.com", models.RoleAdmin)
	addressID := createAddress(t, r, customerToken)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", customerToken, gin.H{
		"addressId":     addressID,
		"scheduledDate": "2026-09-20",
		"scheduledTime": "10:00",
		"items":         []gin.H{{"serviceId": serviceID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	bookingID := decodeBody(t, w)["id"].(string)
	statusPath := "/api/admin/bookings/" + bookingID + "/status"

	// pending -> in_progress skips a step
	w = doJSON(t, r, http.MethodPatch, statusPath, adminToken, gin.H{"status": "in_progress"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, statusPath, adminToken, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", decodeBody(t, w)["status"])

	w = doJSON(t, r, http.MethodPatch, statusPath, adminToken, gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)

	// cancelled is terminal
	w = doJSON(t, r, http.MethodPatch, statusPath, adminToken, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Cancellation is a status, not removal
	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStaffTodayJobs(t *testing.T) {
	r, db := setupTestRouter(t)
	staffToken := createUser(t, r, db, "staff@example.com", models.RoleStaff)

	today := models.Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		AddressID:     uuid.New(),
		ScheduledDate: timeNowDate(),
		ScheduledTime: "09:00",
		TotalAmount:   120,
		Status:        models.BookingConfirmed,
	}
	later := models.Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		AddressID:     uuid.New(),
		ScheduledDate: "2030-01-01",
		ScheduledTime: "09:00",
		TotalAmount:   80,
		Status:        models.BookingPending,
	}
	assert.NoError(t, db.Create(&today).Error)
	assert.NoError(t, db.Create(&later).Error)

	w := doJSON(t, r, http.MethodGet, "/api/staff/jobs/today", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var jobs []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 1)
	assert.Equal(t, today.ID.String(), jobs[0]["id"])
}

func TestDefaultAddressExclusive(t *testing.T) {
	r, db := setupTestRouter(t)
	token := createUser(t, r, db, "customer@example.com", models.RoleCustomer)

	first := createAddress(t, r, token)
	_ = createAddress(t, r, token) // also isDefault: true

	var addr models.Address
	assert.NoError(t, db.First(&addr, "id = ?", first).Error)
	assert.False(t, addr.IsDefault)

	var defaults int64
	db.Model(&models.Address{}).Where("is_default = ?", true).Count(&defaults)
	assert.Equal(t, int64(1), defaults)
}
