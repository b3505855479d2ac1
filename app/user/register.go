package user

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/internal/service"
	"hirehub/job-portal-api/pkg/security"
	"hirehub/job-portal-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Register creates a new, unverified account and mails a verification
// link. The account persists even when the mail can't be delivered,
// the resend endpoint covers that case
func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	fullname := c.PostForm("fullname")
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	phoneNumber := c.PostForm("phoneNumber")
	password := c.PostForm("password")
	role := c.PostForm("role")

	if fullname == "" || email == "" || phoneNumber == "" || password == "" || role == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "All fields (fullname, email, phoneNumber, password, role) are required",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))

		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(password); err != nil {
		zap.L().Debug("Invalid password", zap.Error(err), zap.String("requestID", requestID))

		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	if err := validators.RoleValidator(role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	var found bool

	r := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "User already exists with this email",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	hash, err := security.HashPassword(password, viper.GetInt("security.bcrypt_cost"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	verifToken, err := d.Tokens.Verification(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var profilePhotoURL string

	if file, err := c.FormFile("file"); err == nil && file != nil {
		if d.Uploader == nil {
			zap.L().Warn("Profile photo provided but storage is disabled", zap.String("requestID", requestID))
		} else {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":   "Internal server error",
					"success":   false,
					"requestID": requestID,
				})

				zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
				return
			}
			defer src.Close()

			key := fmt.Sprintf("profile/%s/%s", userID, file.Filename)

			profilePhotoURL, err = d.Uploader.Upload(c.Request.Context(), src, key)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":   "Failed to upload profile photo",
					"success":   false,
					"requestID": requestID,
				})

				zap.L().Error("Failed to upload profile photo", zap.Error(err), zap.String("requestID", requestID))
				return
			}
		}
	}

	// The unique index is the real arbiter here. Two concurrent
	// registrations can both pass the precheck, the second insert
	// fails and is reported like any other duplicate
	err = d.DB.Create(&model.User{
		ID:                userID,
		FullName:          fullname,
		Email:             email,
		PhoneNumber:       phoneNumber,
		PasswordHash:      hash,
		Role:              role,
		IsVerified:        false,
		VerificationToken: &verifToken,
		Profile: model.Profile{
			ProfilePhoto: profilePhotoURL,
		},
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "User already exists with this email",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := service.SendVerificationMail(d.Mailer, email, verifToken); err != nil {
		zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))

		// The account exists at this point, the caller has to use the
		// resend endpoint once mail delivery works again
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to send verification email, but account created",
			"success":   true,
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Account created successfully. Please verify your email.",
		"success":   true,
		"requestID": requestID,
	})
}
