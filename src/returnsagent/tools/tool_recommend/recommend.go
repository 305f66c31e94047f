package tool_recommend

import (
	"context"
	"strings"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/returnsagent/toolsutil"
	"github.com/autoreturn/autoreturn/src/storage"
)

// Tool name constant
const Name = "get_recommendations"

// maxRecommendations bounds the list handed to the model.
const maxRecommendations = 4

const recommendPrompt = `Finds personalized product suggestions by matching the customer's preferences against catalog tags. Useful when offering an exchange alternative.`

// RecommendInput represents the parameters for get_recommendations
type RecommendInput struct {
	UserPreferences string `json:"user_preferences" required:"true" description:"Comma-separated interests, e.g. 'sustainable, tech'"`
	Category        string `json:"category" description:"Optional category filter"`
}

// Recommendation is one suggested product.
type Recommendation struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
}

// RecommendOutput represents the response from get_recommendations
type RecommendOutput struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

// Tool returns the get_recommendations tool definition.
func Tool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return agent.NewGenericTool(Name, recommendPrompt, makeRecommendHandler(store, userID))
}

func makeRecommendHandler(store storage.ExecQuerier, userID string) func(ctx context.Context, input RecommendInput) (RecommendOutput, error) {
	return func(ctx context.Context, input RecommendInput) (RecommendOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("getting recommendations", "preferences", input.UserPreferences, "category", input.Category)

		products, err := storage.ListProducts(ctx, store, input.Category)
		if err != nil {
			return RecommendOutput{}, toolsutil.BackendError("listing products", err)
		}

		// Merge the stated preferences with the stored profile.
		prefs := splitPreferences(input.UserPreferences)
		if userID != "" {
			if user, err := storage.GetUserByID(ctx, store, userID); err == nil && user != nil {
				for _, p := range user.Preferences {
					prefs = append(prefs, strings.ToLower(p))
				}
			}
		}

		var matched []Recommendation
		for _, product := range products {
			if !matchesPreferences(product.Tags, prefs) {
				continue
			}
			matched = append(matched, Recommendation{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Category:  product.Category,
				Tags:      product.Tags,
			})
			if len(matched) == maxRecommendations {
				break
			}
		}

		return RecommendOutput{Recommendations: matched, Count: len(matched)}, nil
	}
}

func splitPreferences(raw string) []string {
	var prefs []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			prefs = append(prefs, p)
		}
	}
	return prefs
}

func matchesPreferences(tags storage.JSONStringArray, prefs []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, pref := range prefs {
			if tag == pref || strings.Contains(tag, pref) || strings.Contains(pref, tag) {
				return true
			}
		}
	}
	return false
}
