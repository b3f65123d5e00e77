package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"laborlink/config"
	"laborlink/database"
	directoryRepo "laborlink/database/repository/directory"
	"laborlink/models"
	"laborlink/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixed ids keep reseeding stable, so tokens printed earlier stay valid.
var (
	laborNamespace    = uuid.MustParse("6f1c2f7e-3b1a-4c55-9a55-0d6a9b3f2a10")
	customerNamespace = uuid.MustParse("0b8e4a3c-71d2-4f0e-8c1b-5a2f9d7e6c01")
)

const seedPassword = "password123"

func main() {
	config.LoadConfig()
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	dir := directoryRepo.NewMongoDirectory(database.Database())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	rate := func(v float64) *float64 { return &v }
	labors := []models.Labor{
		{Name: "Nimal Perera", SkillCategory: "Plumber", Location: "Colombo 05", DailyRate: rate(1500), IsActive: true},
		{Name: "Kasun Silva", SkillCategory: "Electrician", Location: "Kandy", DailyRate: rate(2500), IsActive: true},
		{Name: "Ruwan Jayasinghe", SkillCategory: "Carpenter", Location: "Galle", IsActive: true},
		{Name: "Saman Kumara", SkillCategory: "Mason", Location: "Negombo", DailyRate: rate(1800), IsActive: false},
	}
	customers := []models.Customer{
		{Name: "Dilini Fernando", Address: "12 Galle Road, Colombo 03"},
		{Name: "Tharindu Wijesekara", Address: "45 Peradeniya Road, Kandy"},
	}

	for i := range labors {
		l := &labors[i]
		l.ID = uuid.NewSHA1(laborNamespace, []byte(l.Name)).String()
		l.Email = fmt.Sprintf("labor%d@laborlink.test", i+1)
		l.Phone = fmt.Sprintf("+9477000%04d", i+1)
		if err := dir.UpsertLabor(ctx, l, string(hash)); err != nil {
			log.Fatalf("Failed to seed labor %s: %v", l.Name, err)
		}
		printToken(l.ID, l.Name, models.RoleLabor)
	}
	for i := range customers {
		c := &customers[i]
		c.ID = uuid.NewSHA1(customerNamespace, []byte(c.Name)).String()
		c.Email = fmt.Sprintf("customer%d@laborlink.test", i+1)
		c.Phone = fmt.Sprintf("+9471000%04d", i+1)
		if err := dir.UpsertCustomer(ctx, c, string(hash)); err != nil {
			log.Fatalf("Failed to seed customer %s: %v", c.Name, err)
		}
		printToken(c.ID, c.Name, models.RoleCustomer)
	}

	adminID := uuid.NewSHA1(customerNamespace, []byte("admin")).String()
	printToken(adminID, "admin", models.RoleAdmin)

	log.Printf("Seeded %d labors and %d customers", len(labors), len(customers))
}

func printToken(id, name string, role models.Role) {
	token, err := utils.GenerateToken(id, string(role), 30*24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to sign token for %s: %v", name, err)
	}
	fmt.Printf("%-8s %-22s %s\n  %s\n", role, name, id, token)
}
