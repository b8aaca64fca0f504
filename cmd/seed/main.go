package main

import (
	"context"
	"errors"
	"log"
	"time"

	"brokerweb/internal/config"
	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/upstream"
)

// seedOwner pairs an owner with the listings published under their name.
type seedOwner struct {
	owner      upstream.OwnerInput
	properties []upstream.PropertyInput
}

var fixtures = []seedOwner{
	{
		owner: upstream.OwnerInput{
			Name:   "Rajesh Malhotra",
			Email:  "rajesh.malhotra@example.com",
			Phone:  "9810012345",
			Status: "active",
		},
		properties: []upstream.PropertyInput{
			{
				Title:        "3 BHK Builder Floor, Sector 45",
				PropertyType: "residential",
				Location:     "Gurugram",
				Sector:       "45",
				Price:        "18500000",
				PriceLabel:   "1.85 Cr",
				Description:  "Park-facing builder floor with covered parking.",
				Beds:         3,
				Baths:        3,
				Area:         "1850 sq ft",
				Amenities:    []string{"parking", "power backup", "park facing"},
			},
			{
				Title:        "Retail Shop, Galleria Market",
				PropertyType: "commercial",
				Location:     "Gurugram",
				Sector:       "28",
				Price:        "32000000",
				PriceLabel:   "3.2 Cr",
				Description:  "Ground floor retail unit with high footfall.",
				Area:         "420 sq ft",
			},
		},
	},
	{
		owner: upstream.OwnerInput{
			Name:   "Sunita Kapoor",
			Email:  "sunita.kapoor@example.com",
			Phone:  "9910098765",
			Status: "active",
		},
		properties: []upstream.PropertyInput{
			{
				Title:        "2 BHK Apartment, Sector 57",
				PropertyType: "residential",
				Location:     "Gurugram",
				Sector:       "57",
				Price:        "9500000",
				PriceLabel:   "95 L",
				Description:  "Well-maintained society apartment near the metro.",
				Beds:         2,
				Baths:        2,
				Area:         "1280 sq ft",
				Amenities:    []string{"lift", "gym", "club house"},
			},
		},
	},
}

type seedAgent struct {
	name     string
	email    string
	password string
}

var agentFixtures = []seedAgent{
	{name: "Vikram Singh", email: "vikram.singh@example.com", password: "agent-demo-1"},
	{name: "Priya Nair", email: "priya.nair@example.com", password: "agent-demo-2"},
}

var inquiryFixtures = []upstream.InquiryInput{
	{
		Name:        "Amit Verma",
		Phone:       "9876543210",
		Email:       "amit.verma@example.com",
		Message:     "Looking for a 3 BHK in Sector 45, budget around 1.8 Cr.",
		InquiryType: "buy",
		SourcePage:  "home",
	},
	{
		Name:        "Neha Gupta",
		Phone:       "9123456789",
		Message:     "Want to rent out my apartment in Sector 57.",
		InquiryType: "rent",
		SourcePage:  "contact",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	backend := upstream.New(cfg.APIBaseURL, cfg.RequestTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	token, err := adminToken(ctx, backend, cfg)
	if err != nil {
		log.Fatalf("Failed to authenticate as admin: %v", err)
	}
	log.Println("Authenticated against backend")

	owners, listings := 0, 0
	for _, fixture := range fixtures {
		owner, err := backend.CreateOwner(ctx, token, fixture.owner)
		if err != nil {
			log.Printf("Skipping owner %s: %v", fixture.owner.Name, err)
			continue
		}
		owners++

		for _, prop := range fixture.properties {
			prop.OwnerID = owner.ID
			if _, err := backend.CreateProperty(ctx, token, prop); err != nil {
				log.Printf("Skipping property %q: %v", prop.Title, err)
				continue
			}
			listings++
		}
	}

	agents := 0
	for _, fixture := range agentFixtures {
		if _, err := backend.Register(ctx, fixture.name, fixture.email, fixture.password, "agent"); err != nil {
			log.Printf("Skipping agent %s: %v", fixture.name, err)
			continue
		}
		agents++
	}

	inquiries := 0
	for _, in := range inquiryFixtures {
		if _, err := backend.CreateInquiry(ctx, in); err != nil {
			log.Printf("Skipping inquiry from %s: %v", in.Name, err)
			continue
		}
		inquiries++
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Owners created: %d", owners)
	log.Printf("  - Listings created: %d", listings)
	log.Printf("  - Agents registered: %d", agents)
	log.Printf("  - Inquiries created: %d", inquiries)
}

// adminToken logs in as the seed admin, registering the account first when
// the backend does not know it yet.
func adminToken(ctx context.Context, backend *upstream.Client, cfg *config.Config) (string, error) {
	res, err := backend.AdminLogin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err == nil {
		return res.AccessToken, nil
	}
	if !errors.Is(err, apperrors.ErrSessionExpired) && !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	log.Println("Admin account missing, registering it")
	res, err = backend.Register(ctx, "Seed Admin", cfg.SeedAdminEmail, cfg.SeedAdminPassword, "admin")
	if err != nil {
		return "", err
	}
	return res.AccessToken, nil
}
