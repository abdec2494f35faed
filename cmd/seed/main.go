// Command seed fills the configured catalog with generated books.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logging"

	"go.uber.org/zap"
)

var (
	authors    = []string{"Ada Byron", "Jorge Borges", "Ursula Le Guin", "Carl Sagan", "Mary Beard", "Italo Calvino", "Toni Morrison", "Stanislaw Lem"}
	tagPool    = []string{"classic", "award-winner", "series", "short", "illustrated", "translated", "debut"}
)

func main() {
	count := flag.Int("count", 50, "Number of books to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("loading config failed", zap.Error(err))
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zap.NewExample().Fatal("creating logger failed", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	blobs, err := blob.Open(ctx, cfg.Catalog.BlobOptions())
	if err != nil {
		logger.Fatal("opening blob store failed", zap.Error(err))
	}
	defer blobs.Close()

	opts := cfg.Catalog.BookOptions()
	manager := catalog.NewManager(ctx, blobs,
		catalog.WithBlobKey(cfg.Catalog.BlobKey),
		catalog.WithRating(opts.RatingEnabled),
		catalog.WithTagPolicy(opts.TagPolicy),
		catalog.WithLogger(logger),
	)

	rng := rand.New(rand.NewSource(rand.Int63()))
	logger.Info("generating books", zap.Int("count", *count))
	for i := 0; i < *count; i++ {
		if _, err := manager.Add(ctx, randomFields(rng, i)); err != nil {
			logger.Fatal("adding book failed", zap.Int("index", i), zap.Error(err))
		}
		if (i+1)%100 == 0 {
			logger.Info("progress", zap.Int("added", i+1), zap.Int("total", *count))
		}
	}

	logger.Info("seeding finished", zap.Int("added", *count), zap.Int("books", len(manager.All())))
}

func randomFields(rng *rand.Rand, i int) book.Fields {
	tags := make([]string, 0, 2)
	for _, j := range rng.Perm(len(tagPool))[:rng.Intn(3)] {
		tags = append(tags, tagPool[j])
	}
	return book.Fields{
		Title:    fmt.Sprintf("Book Title %d - %s", i+1, getRandomWord(rng)),
		Author:   authors[rng.Intn(len(authors))],
		ISBN:     fmt.Sprintf("978-%08d", rng.Intn(100000000)),
		Year:     strconv.Itoa(1950 + rng.Intn(75)),
		Tags:     strings.Join(tags, ", "),
		Category: book.Categories[rng.Intn(len(book.Categories))],
		Rating:   strconv.Itoa(1 + rng.Intn(5)),
	}
}

func getRandomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
