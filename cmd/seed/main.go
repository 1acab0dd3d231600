package main

import (
	"log"
	"os"

	"tourbooking/internal/database"
	"tourbooking/internal/domain"
	"tourbooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tourbooking.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(repository.MigrationModels()...); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM payment_orders")
	db.Exec("DELETE FROM cart_items")
	db.Exec("DELETE FROM ratings")
	db.Exec("DELETE FROM blogs")
	db.Exec("DELETE FROM tours")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@tours.ge",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
		Phone:        "+995 555 000 001",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@tours.ge / admin123")

	userHash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	user := domain.User{
		Email:        "nino@example.ge",
		PasswordHash: string(userHash),
		Role:         domain.RoleUser,
		Name:         "Nino Beridze",
		Phone:        "+995 555 123 456",
	}
	db.Create(&user)

	// ================== TOURS ==================
	log.Println("Creating tours...")

	lat, lng := 42.655, 44.641
	kazbegi := domain.Tour{
		Title:       datatypes.NewJSONSlice([]string{"ყაზბეგი", "Kazbegi", "Казбеги"}),
		Subtitle:    datatypes.NewJSONSlice([]string{"მთების ტური", "Mountain day trip", "Горный тур"}),
		Description: datatypes.NewJSONSlice([]string{"სრული დღის ტური ყაზბეგში", "Full-day trip to Kazbegi and Gergeti", "Однодневный тур в Казбеги"}),
		BasePrice:   80,
		Duration:    "10h",
		LeaveTime:   "08:00",
		ReturnTime:  "20:00",
		Lat:         &lat,
		Lng:         &lng,
		Status:      domain.TourActive,
		Images:      datatypes.NewJSONSlice([]string{"/static/tours/kazbegi-1.jpg"}),
		Activities: datatypes.NewJSONSlice([]domain.OfferedActivity{
			{ActivityTypeID: "paragliding", NameSnapshot: "Paragliding", PriceIncrement: 120},
			{ActivityTypeID: "horse-riding", NameSnapshot: "Horse riding", PriceIncrement: 40},
		}),
	}
	db.Create(&kazbegi)

	lat2, lng2 := 41.838, 45.803
	kakheti := domain.Tour{
		Title:       datatypes.NewJSONSlice([]string{"კახეთი", "Kakheti", "Кахетия"}),
		Subtitle:    datatypes.NewJSONSlice([]string{"ღვინის ტური", "Wine region tour", "Винный тур"}),
		Description: datatypes.NewJSONSlice([]string{"ღვინის დეგუსტაცია კახეთში", "Wine tasting across Kakheti", "Дегустация вин в Кахетии"}),
		BasePrice:   65,
		Duration:    "9h",
		LeaveTime:   "09:00",
		ReturnTime:  "19:00",
		Lat:         &lat2,
		Lng:         &lng2,
		Status:      domain.TourActive,
		Images:      datatypes.NewJSONSlice([]string{"/static/tours/kakheti-1.jpg"}),
		Activities: datatypes.NewJSONSlice([]domain.OfferedActivity{
			{ActivityTypeID: "wine-tasting", NameSnapshot: "Wine tasting", PriceIncrement: 25},
		}),
	}
	db.Create(&kakheti)

	draft := domain.Tour{
		Title:     datatypes.NewJSONSlice([]string{"სვანეთი", "Svaneti", "Сванетия"}),
		BasePrice: 150,
		Duration:  "2d",
		Status:    domain.TourDraft,
	}
	db.Create(&draft)

	// ================== BLOGS ==================
	log.Println("Creating blogs...")

	db.Create(&domain.Blog{
		Title:     datatypes.NewJSONSlice([]string{"როგორ მოვემზადოთ მთის ტურისთვის", "How to prepare for a mountain tour", "Как подготовиться к горному туру"}),
		Text:      datatypes.NewJSONSlice([]string{"...", "Pack layers, bring water.", "..."}),
		Images:    datatypes.NewJSONSlice([]string{"/static/blogs/prep-1.jpg"}),
		Published: true,
	})

	log.Println("Seed complete.")
}
