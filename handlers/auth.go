package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Linkin143/TaskBuddy/config"
	"github.com/Linkin143/TaskBuddy/middleware"
	"github.com/Linkin143/TaskBuddy/models"
	"github.com/Linkin143/TaskBuddy/utils"
)

const dbTimeout = 5 * time.Second

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. Public signups always get the user role.
func Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	if req.Password != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "Passwords do not match")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var existing models.User
	err := config.Users().FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	}
	if err != mongo.ErrNoDocuments {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		Name:            req.Name,
		Email:           req.Email,
		Password:        string(hashedPassword),
		ProfileImageURL: req.ProfileImageURL,
		Role:            models.RoleUser,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if _, err := config.Users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, "Signup successful")
}

// Signin verifies credentials and issues the session cookie.
func Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var user models.User
	err := config.Users().FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return echo.NewHTTPError(http.StatusNotFound, "User not found!")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Wrong Credentials")
	}

	token, err := utils.GenerateJwt(user.ID.Hex(), user.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	c.SetCookie(sessionCookie(token, int(utils.SessionTTL().Seconds())))

	return c.JSON(http.StatusOK, user)
}

// Signout clears the session cookie unconditionally.
func Signout(c echo.Context) error {
	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, "User has been logged out successfully!")
}

// Profile returns the authenticated user's record.
func Profile(c echo.Context) error {
	user, err := findUserByID(c, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfile applies a partial update to the authenticated user.
func UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	user, err := findUserByID(c, middleware.UserID(c))
	if err != nil {
		return err
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		update["password"] = string(hashedPassword)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := config.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": update},
	).Err(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	updated, err := findUserByID(c, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// UploadImage stores an avatar under the uploads dir and returns its public URL.
func UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()

	if err := os.MkdirAll(config.App.UploadDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store upload")
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(config.App.UploadDir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store upload")
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store upload")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"imageUrl": config.App.BackendURL + "/uploads/" + filename,
	})
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
	}
	if config.App != nil && config.App.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func findUserByID(c echo.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User not found!")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var user models.User
	err = config.Users().FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User not found!")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	return &user, nil
}
