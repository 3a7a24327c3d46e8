package main

import (
	"log"
	"os"

	"ai-lessonlab-be/internal/model"
	"ai-lessonlab-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Default learning catalog. Seeding is idempotent: it skips entirely when any
// category already exists.
var categoriesData = map[string][]string{
	"Science": {
		"Physics", "Chemistry", "Biology", "Space", "Earth Science",
		"Environmental Science", "Mathematics", "Computer Science",
	},
	"Technology": {
		"Programming", "Web Development", "Mobile Development",
		"Artificial Intelligence", "Data Science", "Cybersecurity",
		"Cloud Computing", "DevOps",
	},
	"History": {
		"Ancient History", "Medieval History", "Modern History",
		"World War I", "World War II", "Renaissance", "Industrial Revolution",
	},
	"Arts": {
		"Painting", "Sculpture", "Music", "Literature", "Theater",
		"Film", "Photography", "Digital Art",
	},
	"Languages": {
		"English", "Spanish", "French", "German", "Italian",
		"Japanese", "Chinese", "Arabic",
	},
	"Business": {
		"Marketing", "Finance", "Management", "Entrepreneurship",
		"Economics", "Accounting", "Strategy", "Leadership",
	},
	"Health & Medicine": {
		"Nutrition", "Exercise", "Mental Health", "Anatomy",
		"Diseases", "Treatments", "Public Health", "Alternative Medicine",
	},
	"Philosophy": {
		"Ethics", "Logic", "Metaphysics", "Political Philosophy",
		"Ancient Philosophy", "Modern Philosophy", "Eastern Philosophy",
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting database seeding...")

	if err := seedCategories(db); err != nil {
		color.Red("Error seeding categories: %v", err)
		os.Exit(1)
	}

	color.Green("Database seeding completed.")
}

func seedCategories(db *gorm.DB) error {
	var existing int64
	if err := db.Model(&model.Category{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		color.Yellow("Categories already exist. Skipping seeding.")
		return nil
	}

	for categoryName, subCategories := range categoriesData {
		category := model.Category{Name: categoryName}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
		color.White("Created category: %s", categoryName)

		for _, subName := range subCategories {
			sub := model.SubCategory{
				Name:       subName,
				CategoryId: category.Id,
			}
			if err := db.Create(&sub).Error; err != nil {
				return err
			}
		}
		color.White("  Added %d subcategories", len(subCategories))
	}

	return nil
}
