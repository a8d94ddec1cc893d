// Command seed fills a development database with fake accounts, follows,
// posts, comments and reactions.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"Murmur/internal/config"
	"Murmur/internal/core/auth"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"
	"Murmur/internal/core/users"
	"Murmur/internal/core/visibility"
	postgresRepo "Murmur/internal/db/postgres"
)

const seedPassword = "password123"

func main() {
	numUsers := flag.Int("users", 20, "accounts to create")
	postsPerUser := flag.Int("posts", 5, "top-level posts per account")
	seed := flag.Int64("seed", 42, "faker seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	ctx := context.Background()

	db, err := postgresRepo.Connect(ctx, cfg.DatabaseURL, postgresRepo.DefaultPoolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgresRepo.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	gdb, err := postgresRepo.NewGorm(db)
	if err != nil {
		log.Fatalf("Failed to initialize gorm: %v", err)
	}

	userRepo := postgresRepo.NewUserRepository(gdb)
	followRepo := postgresRepo.NewFollowRepository(gdb)
	predicate := visibility.NewPredicate(postgresRepo.NewAccountLookup(gdb), followRepo)

	authService := auth.NewAuthService(userRepo, auth.NewTokenIssuer("seed-only", 0))
	userService := users.NewUserService(userRepo, followRepo, nil)
	followService := follows.NewFollowService(followRepo, userRepo, nil)
	// Seeded posts carry no images, so no media storage is needed
	postService := posts.NewPostService(postgresRepo.NewPostRepository(gdb), posts.NewFilterBuilder(followRepo), predicate, nil, nil)
	reactionService := reactions.NewReactionService(postgresRepo.NewReactionRepository(gdb), postService, predicate, nil)

	faker := gofakeit.New(*seed)

	// Accounts
	var ids []string
	for i := 0; i < *numUsers; i++ {
		username := strings.ToLower(faker.Username())
		_, err := authService.Signup(ctx, auth.SignupRequest{
			Name:     faker.Name(),
			Username: username,
			Email:    username + "@example.com",
			Password: seedPassword,
		})
		if err != nil {
			if errors.Is(err, users.ErrUsernameTaken) || errors.Is(err, users.ErrEmailTaken) {
				continue
			}
			log.Fatalf("Failed to create user %s: %v", username, err)
		}
		user, err := userRepo.GetByUsername(ctx, username)
		if err != nil {
			log.Fatalf("Failed to load user %s: %v", username, err)
		}
		if faker.Bool() {
			if err := userService.SetVisibility(ctx, user.ID, true); err != nil {
				log.Fatalf("Failed to publish %s: %v", username, err)
			}
		}
		ids = append(ids, user.ID)
	}
	log.Printf("Created %d users (password %q)", len(ids), seedPassword)

	// Follow graph: each account follows a handful of others
	edges := 0
	for _, follower := range ids {
		for j := 0; j < faker.Number(1, 5); j++ {
			followed := ids[faker.Number(0, len(ids)-1)]
			err := followService.Follow(ctx, follower, followed)
			switch {
			case err == nil:
				edges++
			case errors.Is(err, follows.ErrSelfFollow), errors.Is(err, follows.ErrAlreadyFollowing):
			default:
				log.Fatalf("Failed to follow: %v", err)
			}
		}
	}
	log.Printf("Created %d follow edges", edges)

	// Posts, then comments and reactions from whoever can see them
	var postIDs []string
	for _, author := range ids {
		for j := 0; j < *postsPerUser; j++ {
			result, err := postService.CreatePost(ctx, posts.CreatePostRequest{
				AuthorID: author,
				Content:  truncate(faker.Sentence(faker.Number(4, 20))),
			})
			if err != nil {
				log.Fatalf("Failed to create post: %v", err)
			}
			postIDs = append(postIDs, result.Post.ID)
		}
	}
	log.Printf("Created %d posts", len(postIDs))

	comments, reacted := 0, 0
	for _, postID := range postIDs {
		viewer := ids[faker.Number(0, len(ids)-1)]
		parentID := postID
		_, err := postService.CreateComment(ctx, posts.CreatePostRequest{
			AuthorID: viewer,
			ParentID: &parentID,
			Content:  truncate(faker.Sentence(faker.Number(2, 12))),
		})
		if err == nil {
			comments++
		} else if !errors.Is(err, posts.ErrParentNotVisible) {
			log.Fatalf("Failed to create comment: %v", err)
		}

		reactionType := reactions.TypeLike
		if faker.Bool() {
			reactionType = reactions.TypeRetweet
		}
		if _, err := reactionService.React(ctx, viewer, postID, reactionType); err == nil {
			reacted++
		} else if !posts.IsNotFound(err) {
			log.Fatalf("Failed to react: %v", err)
		}
	}
	log.Printf("Created %d comments and %d reactions", comments, reacted)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > posts.MaxContentLength {
		return string(r[:posts.MaxContentLength])
	}
	return s
}
