package seed

import (
	"fmt"
	"log"

	"chronicle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categoryPresets = []struct {
	Title     string
	Slug      string
	Published bool
}{
	{"Technology", "technology", true},
	{"Travel", "travel", true},
	{"Food", "food", true},
	{"Music", "music", true},
	{"Books", "books", true},
	{"Photography", "photography", true},
	{"Drafts Corner", "drafts-corner", false},
}

var locationPresets = []string{
	"Amsterdam", "Berlin", "Lisbon", "New York", "Tokyo", "Reykjavik",
}

// Seed populates the database with demo users, categories, locations,
// posts and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database: %d users, %d posts", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("at least one user is required")
	}
	// first seeded account doubles as the staff user for moderation flows
	users[0].IsStaff = true
	if err := db.Save(users[0]).Error; err != nil {
		return fmt.Errorf("failed to promote staff user: %w", err)
	}
	log.Printf("created %d users (staff: %s)", len(users), users[0].Username)

	categories := make([]*models.Category, 0, len(categoryPresets))
	for _, preset := range categoryPresets {
		category, err := f.CreateCategory(preset.Title, preset.Slug, preset.Published)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", preset.Slug, err)
		}
		categories = append(categories, category)
	}
	log.Printf("created %d categories", len(categories))

	locations := make([]*models.Location, 0, len(locationPresets))
	for _, name := range locationPresets {
		location, err := f.CreateLocation(name)
		if err != nil {
			return fmt.Errorf("failed to create location %q: %w", name, err)
		}
		locations = append(locations, location)
	}
	log.Printf("created %d locations", len(locations))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rnd.Intn(len(users))]
		category := categories[f.rnd.Intn(len(categories))]
		var location *models.Location
		if f.rnd.Intn(3) == 0 {
			location = locations[f.rnd.Intn(len(locations))]
		}
		post, err := f.CreatePost(author, category, location)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	commentCount := 0
	for _, post := range posts {
		for i := f.rnd.Intn(6); i > 0; i-- {
			author := users[f.rnd.Intn(len(users))]
			if _, err := f.CreateComment(author, post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			commentCount++
		}
	}
	log.Printf("created %d comments", commentCount)

	log.Println("seeding complete; all test users have the password: password123")
	return nil
}

// clearData removes all seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Category{},
		&models.Location{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
