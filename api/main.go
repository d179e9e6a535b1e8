package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julienschmidt/httprouter"

	"github.com/roamstay/roamstay"
)

func main() {
	cfg, err := roamstay.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)
	users := db.Collection("users")
	owners := db.Collection("owners")

	// Email uniqueness is the index's job, not the application's.
	for _, c := range []*mongo.Collection{users, owners} {
		if err := ensureEmailIndex(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	userLogger, err := roamstay.NewLogger(cfg.LogDir, "user")
	if err != nil {
		log.Fatal(err)
	}
	ownerLogger, err := roamstay.NewLogger(cfg.LogDir, "owner")
	if err != nil {
		log.Fatal(err)
	}

	issuer := roamstay.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := roamstay.NewMongoRepository(users, func() *roamstay.User { return &roamstay.User{} })
	ownerRepo := roamstay.NewMongoRepository(owners, func() *roamstay.Owner { return &roamstay.Owner{} })

	userSvc := roamstay.NewService(userRepo, issuer, userLogger)
	ownerSvc := roamstay.NewService(ownerRepo, issuer, ownerLogger)

	photos, err := roamstay.NewDiskFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	protectUser := func(h http.Handler) http.Handler {
		return roamstay.Protect(issuer, userRepo, userLogger, h)
	}
	protectOwner := func(h http.Handler) http.Handler {
		return roamstay.Protect(issuer, ownerRepo, ownerLogger, h)
	}

	router := httprouter.New()
	router.Handler(http.MethodPost, "/api/users/register", roamstay.RegisterUserHandler(userSvc, photos))
	router.Handler(http.MethodPost, "/api/users/login", roamstay.LoginUserHandler(userSvc))
	router.Handler(http.MethodGet, "/api/users/:id", protectUser(roamstay.GetUserHandler(userSvc)))
	router.Handler(http.MethodPut, "/api/users/:id", protectUser(roamstay.UpdateUserHandler(userSvc)))
	router.Handler(http.MethodDelete, "/api/users/:id", protectUser(roamstay.DeleteUserHandler(userSvc)))
	router.Handler(http.MethodPost, "/api/users/logout", protectUser(roamstay.LogoutUserHandler(userSvc)))

	router.Handler(http.MethodPost, "/api/owners/register", roamstay.RegisterOwnerHandler(ownerSvc))
	router.Handler(http.MethodPost, "/api/owners/login", roamstay.LoginOwnerHandler(ownerSvc))
	router.Handler(http.MethodGet, "/api/owners/:id", protectOwner(roamstay.GetOwnerHandler(ownerSvc)))
	router.Handler(http.MethodPut, "/api/owners/:id", protectOwner(roamstay.UpdateOwnerHandler(ownerSvc)))
	router.Handler(http.MethodDelete, "/api/owners/:id", protectOwner(roamstay.DeleteOwnerHandler(ownerSvc)))
	router.Handler(http.MethodPost, "/api/owners/logout", protectOwner(roamstay.LogoutOwnerHandler(ownerSvc)))

	router.ServeFiles("/uploads/*filepath", http.Dir(cfg.UploadDir))
	router.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.Redirect(w, r, cfg.FrontendURL, http.StatusFound)
	})

	log.Printf("Server started. Listening on %s\n", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, roamstay.CORS(cfg.FrontendURL, router)))
}

func ensureEmailIndex(ctx context.Context, c *mongo.Collection) error {
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
