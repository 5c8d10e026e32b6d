package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jansuraksha/jan-suraksha-api/api"
	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Admin struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	} `json:"admin"`
}

// Admin represents the admin handler
type Admin struct {
	ADB    databases.AdminDatabase
	CDB    databases.ComplaintDatabase
	Config *config.Config
}

// AdminLoginHandler handles admin login via email/password and returns a JWT
func (h Admin) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email and password required"})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var admin models.AdminUser
	if err := h.ADB.FindOne(ctx, bson.M{"email": email, "active": true}).Decode(&admin); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "Invalid credentials",
			Code:    "INVALID_CREDENTIALS",
		})
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "Invalid credentials",
			Code:    "INVALID_CREDENTIALS",
		})
		return
	}

	jwtSecret := []byte(h.Config.JWTSecret)
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   admin.ID.Hex(),
		"email": admin.Email,
		"roles": admin.Roles,
		"scope": "admin",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	var resp adminLoginResponse
	resp.Token = signed
	resp.Admin.ID = admin.ID.Hex()
	resp.Admin.Email = admin.Email
	resp.Admin.Roles = admin.Roles

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateComplaintStatusHandler moves a complaint to a new canonical status.
// Terminal transitions stamp the resolution time; reopening clears it.
func (h Admin) UpdateComplaintStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	complaintID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "invalid complaint id",
			Code:    "INVALID_COMPLAINT_ID",
		})
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
		})
		return
	}

	if !models.IsCanonicalStatus(req.Status) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "status must be one of submitted, in_progress, resolved, closed",
			Code:    "INVALID_STATUS",
		})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var complaint models.Complaint
	if err := h.CDB.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{
				Success: false,
				Error:   "complaint not found",
				Code:    "COMPLAINT_NOT_FOUND",
			})
			return
		}
		config.InternalStatus("failed to look up complaint", w, err)
		return
	}

	set := bson.M{"status": req.Status}
	unset := bson.M{}
	if models.TerminalStatus(req.Status) {
		if complaint.ResolvedAt == nil {
			set["resolvedAt"] = primitive.NewDateTimeFromTime(time.Now())
		}
	} else {
		unset["resolvedAt"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	if _, err := h.CDB.UpdateOne(ctx, bson.M{"_id": complaintID}, update); err != nil {
		config.InternalStatus("failed to update complaint status", w, err)
		return
	}

	zap.S().Infow("complaint status updated",
		"complaintCode", complaint.ComplaintCode,
		"from", complaint.Status,
		"to", req.Status)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  req.Status,
	})
}

// ListComplaintsHandler pages through complaints for the admin console. An
// optional status query narrows the listing to one canonical bucket.
func (h Admin) ListComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsCanonicalStatus(status) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{
				Success: false,
				Error:   "status must be one of submitted, in_progress, resolved, closed",
				Code:    "INVALID_STATUS",
			})
			return
		}
		filter["status"] = status
	}
	if r.URL.Query().Get("urgent") == "1" {
		filter["isUrgent"] = true
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cursor, err := h.CDB.FindPage(ctx, filter, limit, page)
	if err != nil {
		config.InternalStatus("failed to list complaints", w, err)
		return
	}

	complaints := []models.Complaint{}
	if err := cursor.Decode(&complaints); err != nil {
		config.InternalStatus("failed to decode complaints", w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"complaints": complaints,
		"page":       page,
		"limit":      limit,
	})
}
