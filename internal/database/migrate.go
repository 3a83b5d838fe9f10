package database

import (
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
)

// Migrate provisions the five-table schema. The whole run happens inside one
// transaction so a partial failure leaves no half-created tables behind.
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&models.User{},
			&models.Classroom{},
			&models.Enrollment{},
			&models.Assignment{},
			&models.Submission{},
		)
	})
}
