package main

import (
	"context"
	"flag"
	"log"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/drivers/database"
	"suma-service/internal/app/models"
	"suma-service/internal/app/services/core/accounts"
	"suma-service/internal/app/services/core/doctors"
	"suma-service/internal/app/services/core/patients"
	"suma-service/internal/app/services/core/sellers"
	"suma-service/internal/app/services/core/settings"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/utils"

	"github.com/brianvoe/gofakeit/v7"
)

// Development data seeder. Every generated account uses the same password so
// that any login can be exercised straight from the seed output.
const seedPassword = "suma12345"

var seedCities = []struct {
	Name string
	Fee  float64
}{
	{"Caracas", 100},
	{"Valencia", 80},
	{"Maracaibo", 70},
	{"Barquisimeto", 60},
}

var seedSpecialties = []string{
	"Medicina General",
	"Pediatría",
	"Cardiología",
	"Dermatología",
	"Ginecología",
}

func main() {
	sellerCount := flag.Int("sellers", 3, "number of sellers to create")
	doctorCount := flag.Int("doctors", 10, "number of doctors to create")
	patientCount := flag.Int("patients", 20, "number of patients to create")
	seed := flag.Int64("seed", 0, "faker seed, 0 means random")
	flag.Parse()

	if err := gofakeit.Seed(*seed); err != nil {
		log.Fatalf("Failed to seed faker: %v", err)
	}

	driverConfig := config.NewDriverConfig()
	mongoClient := database.NewMongoDB(driverConfig)
	dbName := driverConfig.MongoDB.DbName

	accountRepository := accounts.NewAccountMongoRepository(mongoClient, dbName)
	patientRepository := patients.NewPatientMongoRepository(mongoClient, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(mongoClient, dbName)
	sellerRepository := sellers.NewSellerMongoRepository(mongoClient, dbName)
	settingsRepository := settings.NewSettingsMongoRepository(mongoClient, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	passwordHash, err := utils.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	seedSettings(ctx, settingsRepository)
	seedAdmin(ctx, accountRepository, passwordHash)

	sellerIDs := make([]string, 0, *sellerCount)
	for i := 0; i < *sellerCount; i++ {
		sellerIDs = append(sellerIDs, seedSeller(ctx, sellerRepository, accountRepository, passwordHash))
	}
	for i := 0; i < *doctorCount; i++ {
		sellerID := ""
		// Roughly one in four doctors signs up without a referral.
		if gofakeit.Number(0, 3) > 0 && len(sellerIDs) > 0 {
			sellerID = sellerIDs[gofakeit.Number(0, len(sellerIDs)-1)]
		}
		seedDoctor(ctx, doctorRepository, accountRepository, passwordHash, sellerID)
	}
	for i := 0; i < *patientCount; i++ {
		seedPatient(ctx, patientRepository, accountRepository, passwordHash)
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Fatalf("Failed to disconnect from mongo: %v", err)
	}
	log.Printf("Seeded %d sellers, %d doctors, %d patients (password %q)",
		*sellerCount, *doctorCount, *patientCount, seedPassword)
}

func seedSettings(ctx context.Context, repo contracts.SettingsRepository) {
	now := time.Now()
	platform := &models.Settings{
		CityFees: make([]models.CityFee, 0, len(seedCities)),
	}
	for _, city := range seedCities {
		platform.CityFees = append(platform.CityFees, models.CityFee{
			City:       city.Name,
			MonthlyFee: city.Fee,
		})
	}
	platform.CreatedAt = now
	platform.UpdatedAt = now
	if err := repo.UpsertSettings(ctx, platform); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}
	log.Printf("Seeded city fees for %d cities", len(seedCities))
}

func seedAdmin(ctx context.Context, repo contracts.AccountRepository, passwordHash string) {
	const adminEmail = "admin@suma.local"

	existing, err := repo.FindAccountByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("Failed to look up admin account: %v", err)
	}
	if existing != nil {
		log.Printf("Admin account %s already present, skipping", adminEmail)
		return
	}

	now := time.Now()
	admin := &models.Account{
		Email:    adminEmail,
		Password: passwordHash,
		Role:     constvars.RoleAdmin,
	}
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := repo.CreateAccount(ctx, admin); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Printf("Seeded admin account %s", adminEmail)
}

func seedSeller(
	ctx context.Context,
	sellerRepository contracts.SellerRepository,
	accountRepository contracts.AccountRepository,
	passwordHash string,
) string {
	now := time.Now()
	seller := &models.Seller{
		Name:           gofakeit.Name(),
		Email:          gofakeit.Email(),
		CommissionRate: float64(gofakeit.Number(5, 20)) / 100,
	}
	seller.CreatedAt = now
	seller.UpdatedAt = now

	sellerID, err := sellerRepository.CreateSeller(ctx, seller)
	if err != nil {
		log.Fatalf("Failed to seed seller: %v", err)
	}

	account := &models.Account{
		Email:     seller.Email,
		Password:  passwordHash,
		Role:      constvars.RoleSeller,
		ProfileID: sellerID,
	}
	account.CreatedAt = now
	account.UpdatedAt = now
	if _, err := accountRepository.CreateAccount(ctx, account); err != nil {
		log.Fatalf("Failed to seed seller account: %v", err)
	}
	return sellerID
}

func seedDoctor(
	ctx context.Context,
	doctorRepository contracts.DoctorRepository,
	accountRepository contracts.AccountRepository,
	passwordHash string,
	sellerID string,
) {
	now := time.Now()
	city := seedCities[gofakeit.Number(0, len(seedCities)-1)].Name

	doctor := &models.Doctor{
		Name:            "Dr. " + gofakeit.Name(),
		Email:           gofakeit.Email(),
		Specialty:       seedSpecialties[gofakeit.Number(0, len(seedSpecialties)-1)],
		City:            city,
		Address:         gofakeit.Street(),
		Phone:           gofakeit.Phone(),
		ConsultationFee: float64(gofakeit.Number(20, 80)),
		SlotDuration:    30,
		Schedule:        weekdaySchedule(),
		Services: []models.Service{
			{ID: gofakeit.UUID(), Name: "Consulta general", Price: float64(gofakeit.Number(20, 50))},
			{ID: gofakeit.UUID(), Name: "Control", Price: float64(gofakeit.Number(10, 30))},
		},
		BankDetails: []models.BankAccount{
			{
				ID:            gofakeit.UUID(),
				BankName:      "Banco de Venezuela",
				AccountNumber: gofakeit.AchAccount(),
				HolderName:    gofakeit.Name(),
			},
		},
		Coupons: []models.Coupon{
			{
				Code:         gofakeit.LetterN(6),
				DiscountType: constvars.DiscountTypePercentage,
				Value:        float64(gofakeit.Number(5, 25)),
				Scope:        constvars.CouponScopeGeneral,
			},
		},
		SellerID:           sellerID,
		Status:             constvars.SubscriptionStatusActive,
		SubscriptionStatus: constvars.SubscriptionStatusActive,
	}
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	doctorID, err := doctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		log.Fatalf("Failed to seed doctor: %v", err)
	}

	account := &models.Account{
		Email:     doctor.Email,
		Password:  passwordHash,
		Role:      constvars.RoleDoctor,
		ProfileID: doctorID,
	}
	account.CreatedAt = now
	account.UpdatedAt = now
	if _, err := accountRepository.CreateAccount(ctx, account); err != nil {
		log.Fatalf("Failed to seed doctor account: %v", err)
	}
}

func seedPatient(
	ctx context.Context,
	patientRepository contracts.PatientRepository,
	accountRepository contracts.AccountRepository,
	passwordHash string,
) {
	now := time.Now()
	patient := &models.Patient{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Phone: gofakeit.Phone(),
		City:  seedCities[gofakeit.Number(0, len(seedCities)-1)].Name,
	}
	patient.CreatedAt = now
	patient.UpdatedAt = now

	patientID, err := patientRepository.CreatePatient(ctx, patient)
	if err != nil {
		log.Fatalf("Failed to seed patient: %v", err)
	}

	account := &models.Account{
		Email:     patient.Email,
		Password:  passwordHash,
		Role:      constvars.RolePatient,
		ProfileID: patientID,
	}
	account.CreatedAt = now
	account.UpdatedAt = now
	if _, err := accountRepository.CreateAccount(ctx, account); err != nil {
		log.Fatalf("Failed to seed patient account: %v", err)
	}
}

func weekdaySchedule() models.WeekSchedule {
	schedule := models.WeekSchedule{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		schedule[day] = models.DaySchedule{
			Active: true,
			Slots: []models.TimeRange{
				{Start: "09:00", End: "12:00"},
				{Start: "14:00", End: "17:00"},
			},
		}
	}
	for _, day := range []string{"saturday", "sunday"} {
		schedule[day] = models.DaySchedule{Active: false, Slots: []models.TimeRange{}}
	}
	return schedule
}
