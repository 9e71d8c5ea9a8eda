package catalogControllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renus-code/QuickBite/models"
)

// Client wraps the two unauthenticated read-only catalog endpoints: a
// meal lookup filtered by leading letter and a static restaurant list.
// Neither the cart nor the ledger depends on these; a fetch failure
// degrades to an empty result with an error flag.
type Client struct {
	MealBaseURL    string
	RestaurantsURL string
	HTTPClient     *http.Client
}

func NewClient(mealBaseURL, restaurantsURL string) *Client {
	return &Client{
		MealBaseURL:    mealBaseURL,
		RestaurantsURL: restaurantsURL,
		HTTPClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

type mealResponse struct {
	Meals []struct {
		IDMeal       string `json:"idMeal"`
		StrMeal      string `json:"strMeal"`
		StrMealThumb string `json:"strMealThumb"`
	} `json:"meals"`
}

// MealsByFirstLetter fetches menu items whose name starts with the given
// letter. Prices are not part of the upstream dataset, so each item gets a
// demo price the way the original app assigned them.
func (c *Client) MealsByFirstLetter(ctx context.Context, letter string) ([]models.FoodItem, error) {
	if letter == "" {
		letter = "a"
	}
	letter = strings.ToLower(letter[:1])

	endpoint := fmt.Sprintf("%s/search.php?f=%s", c.MealBaseURL, url.QueryEscape(letter))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch meals: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch meals: status %d", resp.StatusCode)
	}

	var body mealResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}

	items := make([]models.FoodItem, 0, len(body.Meals))
	for _, meal := range body.Meals {
		items = append(items, models.FoodItem{
			ID:       meal.IDMeal,
			Name:     meal.StrMeal,
			Price:    float64(rand.Intn(15)+5) + 0.99,
			ImageURL: meal.StrMealThumb,
		})
	}
	return items, nil
}

// Restaurants fetches the static restaurant dataset.
func (c *Client) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RestaurantsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch restaurants: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch restaurants: status %d", resp.StatusCode)
	}

	var restaurants []models.Restaurant
	if err := json.NewDecoder(resp.Body).Decode(&restaurants); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	return restaurants, nil
}

// FilterByName keeps items whose name contains the query, case-insensitive.
func FilterByName(items []models.FoodItem, query string) []models.FoodItem {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(query)) {
			out = append(out, item)
		}
	}
	return out
}

// GET /menu?letter=a&q=chicken
func GetMenu(client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := client.MealsByFirstLetter(c.Request.Context(), c.Query("letter"))
		if err != nil {
			log.Printf("menu fetch failed: %v", err)
			c.JSON(http.StatusOK, gin.H{"items": []models.FoodItem{}, "fetch_failed": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":        FilterByName(items, c.Query("q")),
			"fetch_failed": false,
		})
	}
}

// GET /restaurants
func GetRestaurants(client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurants, err := client.Restaurants(c.Request.Context())
		if err != nil {
			log.Printf("restaurant fetch failed: %v", err)
			c.JSON(http.StatusOK, gin.H{"restaurants": []models.Restaurant{}, "fetch_failed": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"restaurants": restaurants, "fetch_failed": false})
	}
}
