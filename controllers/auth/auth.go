package authController

import (
	"time"

	"aerocert/config"
	"aerocert/database"
	"aerocert/middleware"
	"aerocert/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Signup registers a personnel profile
func Signup(c *fiber.Ctx) error {
	reqData := new(struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Mobile         string `json:"mobile"`
		Password       string `json:"password"`
		EmployeeNumber string `json:"employee_number"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Email == "" || reqData.Password == "" || reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name, email and password are required!", nil)
	}

	db := database.Database.Db

	var existing models.Profile
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process password!", nil)
	}

	profile := models.Profile{
		Name:           reqData.Name,
		Email:          reqData.Email,
		Mobile:         reqData.Mobile,
		Password:       string(hashedPassword),
		EmployeeNumber: reqData.EmployeeNumber,
	}

	if err := db.Create(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Profile created successfully!", fiber.Map{
		"profile_id": profile.ID,
	})
}

// Login authenticates a profile and returns a JWT
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var profile models.Profile
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	token, err := middleware.GenerateJWT(profile.ID, profile.Name, profile.Role, profile.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	now := time.Now()
	db.Model(&profile).Update("last_login", now)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", fiber.Map{
		"token": token,
		"profile": fiber.Map{
			"id":    profile.ID,
			"name":  profile.Name,
			"email": profile.Email,
			"role":  profile.Role,
		},
	})
}
