package user

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileUpdate applies a partial update to the authenticated user.
// Only provided fields change, an attached file becomes the resume
func ProfileUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User

	err := d.DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "User not found",
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

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if fullname := c.PostForm("fullname"); fullname != "" {
		user.FullName = fullname
	}

	if email := c.PostForm("email"); email != "" {
		email = strings.ToLower(strings.TrimSpace(email))

		if err := validators.EmailValidator(email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   err.Error(),
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		user.Email = email
	}

	if phoneNumber := c.PostForm("phoneNumber"); phoneNumber != "" {
		user.PhoneNumber = phoneNumber
	}

	if bio := c.PostForm("bio"); bio != "" {
		user.Profile.Bio = bio
	}

	if skills := c.PostForm("skills"); skills != "" {
		parts := strings.Split(skills, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		user.Profile.Skills = parts
	}

	if file, err := c.FormFile("file"); err == nil && file != nil && d.Uploader != nil {
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

		key := fmt.Sprintf("resume/%s/%s", userID, file.Filename)

		resumeURL, err := d.Uploader.Upload(c.Request.Context(), src, key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Failed to upload resume",
				"success":   false,
				"requestID": requestID,
			})

			zap.L().Error("Failed to upload resume", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user.Profile.Resume = resumeURL
		user.Profile.ResumeOriginalName = file.Filename
	}

	err = d.DB.Save(&user).Error
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

		zap.L().Error("Failed to save user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Profile updated successfully",
		"user":      sanitize(&user),
		"success":   true,
		"requestID": requestID,
	})
}
