package db

import (
	"fmt"
	"math/rand"

	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const seedPassword = "password123"

var seedNames = []string{
	"Olivia Bennett", "Liam Carter", "Emma Sullivan", "Noah Parker",
	"Ava Mitchell", "Ethan Brooks", "Sophia Hayes", "Mason Reed",
	"Isabella Cooper", "Lucas Morgan", "Mia Foster", "Logan Bailey",
	"Charlotte Ward", "James Hughes", "Amelia Cole", "Benjamin Price",
	"Harper Dunn", "Elijah Shaw", "Evelyn Lane", "Henry Fox",
	"Abigail Ross", "Alexander Day", "Emily West", "Daniel Burke",
	"Ella Stone",
}

var seedSkills = []string{
	"Go", "JavaScript", "React", "SQL", "Docker",
	"Python", "AWS", "Kubernetes", "TypeScript", "Git",
}

// Seed wipes the users table and inserts verified demo accounts: five
// recruiters and twenty students, all sharing the same password so the
// frontend can be clicked through without registering
func Seed(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&model.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users table, %w", err)
	}

	hash, err := security.HashPassword(seedPassword, viper.GetInt("security.bcrypt_cost"))
	if err != nil {
		return fmt.Errorf("failed to hash demo password, %w", err)
	}

	users := make([]model.User, 0, 25)

	for i := 0; i < 5; i++ {
		id, err := gonanoid.New(16)
		if err != nil {
			return err
		}

		users = append(users, model.User{
			ID:           id,
			FullName:     seedNames[i],
			Email:        fmt.Sprintf("recruiter%d@example.com", i),
			PhoneNumber:  fmt.Sprintf("555010%04d", rand.Intn(10000)),
			PasswordHash: hash,
			Role:         model.RoleRecruiter,
			IsVerified:   true,
			Profile: model.Profile{
				Bio: "Talent acquisition at a growing company.",
			},
		})
	}

	for i := 0; i < 20; i++ {
		id, err := gonanoid.New(16)
		if err != nil {
			return err
		}

		skills := make(model.StringSlice, 0, 3)
		for _, j := range rand.Perm(len(seedSkills))[:3] {
			skills = append(skills, seedSkills[j])
		}

		users = append(users, model.User{
			ID:           id,
			FullName:     seedNames[i+5],
			Email:        fmt.Sprintf("student%d@example.com", i),
			PhoneNumber:  fmt.Sprintf("555020%04d", rand.Intn(10000)),
			PasswordHash: hash,
			Role:         model.RoleStudent,
			IsVerified:   true,
			Profile: model.Profile{
				Bio:    "Student looking for a first role.",
				Skills: skills,
			},
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to insert demo users, %w", err)
	}

	fmt.Printf("Seeded %d demo users (password %q)\n", len(users), seedPassword)
	return nil
}
