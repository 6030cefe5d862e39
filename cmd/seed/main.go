package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"realtymedia/internal/config"
	"realtymedia/internal/database"
	"realtymedia/internal/domain/agent"
	"realtymedia/internal/domain/client"
	"realtymedia/internal/domain/media"
	"realtymedia/internal/domain/property"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "realty.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&agent.Agent{}, &property.Property{}, &client.Client{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := media.Migrate(db); err != nil {
		log.Fatal("media migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM media_assets")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM agents")

	ctx := context.Background()

	log.Println("Creating agents...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
	agents := []agent.Agent{
		{Email: "anna@realty.example", PasswordHash: string(hash), Name: "Anna Keller", Phone: "+49 151 0000001"},
		{Email: "marc@realty.example", PasswordHash: string(hash), Name: "Marc Weber", Phone: "+49 151 0000002"},
	}
	for i := range agents {
		if err := db.Create(&agents[i]).Error; err != nil {
			log.Fatal("seed agent:", err)
		}
	}

	log.Println("Creating properties and clients...")
	props := []property.Property{
		{AgentID: agents[0].ID, Address: "Lindenstrasse 12", City: "Berlin", Price: 485000, Rooms: 3, AreaSqm: 88.5},
		{AgentID: agents[0].ID, Address: "Am Stadtpark 4", City: "Leipzig", Price: 312000, Rooms: 4, AreaSqm: 104},
		{AgentID: agents[1].ID, Address: "Hafenweg 9", City: "Hamburg", Price: 655000, Rooms: 2, AreaSqm: 71},
	}
	for i := range props {
		if err := db.Create(&props[i]).Error; err != nil {
			log.Fatal("seed property:", err)
		}
	}

	clients := []client.Client{
		{AgentID: agents[0].ID, Name: "Jonas Brandt", Email: "jonas@example.com", Phone: "+49 160 1111111"},
		{AgentID: agents[1].ID, Name: "Petra Vogel", Email: "petra@example.com"},
	}
	for i := range clients {
		if err := db.Create(&clients[i]).Error; err != nil {
			log.Fatal("seed client:", err)
		}
	}

	log.Println("Uploading demo images...")
	policy := config.MediaPolicy{
		MaxImageBytes:        15 * 1024 * 1024,
		MaxDocumentBytes:     10 * 1024 * 1024,
		AllowedImageTypes:    []string{"image/png", "image/jpeg"},
		AllowedDocumentTypes: []string{"application/pdf", "text/plain"},
		ThumbWidth:           320,
		ThumbHeight:          240,
		ThumbQuality:         85,
		ThumbKeepAspectRatio: true,
	}
	store := media.NewStore(media.NewRepository(db), media.NewValidator(policy), media.NewThumbnailer(policy), nil)

	demo := []struct {
		propertyIdx int
		fileName    string
		category    string
		fill        color.RGBA
	}{
		{0, "facade.png", "exterior", color.RGBA{R: 120, G: 140, B: 200, A: 255}},
		{0, "living_room.png", "interior", color.RGBA{R: 200, G: 180, B: 120, A: 255}},
		{1, "garden.png", "exterior", color.RGBA{R: 110, G: 190, B: 120, A: 255}},
	}
	for _, d := range demo {
		owner := media.OwnerRef{Kind: media.OwnerProperty, ID: props[d.propertyIdx].ID}
		_, err := store.Upload(ctx, owner, &props[d.propertyIdx].AgentID, media.UploadInput{
			Raw:      demoPNG(640, 480, d.fill),
			FileName: d.fileName,
			MimeType: "image/png",
			Category: d.category,
		})
		if err != nil {
			log.Fatal("seed media:", err)
		}
	}

	log.Println("Seed complete. Login with anna@realty.example / agent123")
}

func demoPNG(w, h int, fill color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatal("encode demo png:", err)
	}
	return buf.Bytes()
}
