package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ReviewsBAPath    string
	ReviewsRBPath    string
	BeersPath        string
	BreweriesPath    string
	UsersBAPath      string
	UsersRBPath      string
	UsersMatchedPath string

	Delimiter         rune
	StrictBreweryKeys bool

	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ReviewsBAPath:    getEnv("REVIEWS_BA_PATH", "./data/BeerAdvocate/reviews.txt"),
		ReviewsRBPath:    getEnv("REVIEWS_RB_PATH", "./data/RateBeer/reviews.txt"),
		BeersPath:        getEnv("BEERS_PATH", "./data/matched_beer_data/beers.csv"),
		BreweriesPath:    getEnv("BREWERIES_PATH", "./data/matched_beer_data/breweries.csv"),
		UsersBAPath:      getEnv("USERS_BA_PATH", "./data/BeerAdvocate/users.csv"),
		UsersRBPath:      getEnv("USERS_RB_PATH", "./data/RateBeer/users.csv"),
		UsersMatchedPath: getEnv("USERS_MATCHED_PATH", ""),

		Delimiter:         getEnvRune("CSV_DELIMITER", ','),
		StrictBreweryKeys: getEnvBool("STRICT_BREWERY_KEYS", false),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/canonical_reviews.csv"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvRune(key string, fallback rune) rune {
	val := os.Getenv(key)
	if val == `\t` {
		return '\t'
	}
	if r := []rune(val); len(r) == 1 {
		return r[0]
	}
	return fallback
}
