package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wellatlas/wellatlas/config"
	"github.com/wellatlas/wellatlas/middleware"
	"github.com/wellatlas/wellatlas/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a login identity. Login is optional everywhere; a known
// actor only shows up as created_by on the entries they post.
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	json.NewDecoder(r.Body).Decode(&req)

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = req.Username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	user := models.User{Name: req.Name, Username: req.Username, PasswordHash: string(hash)}
	if err := config.DB.Create(&user).Error; err != nil {
		http.Error(w, "username already taken", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login checks credentials and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	json.NewDecoder(r.Body).Decode(&req)

	var user models.User
	if err := config.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateToken(user.ID.String(), user.Name, user.Username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
