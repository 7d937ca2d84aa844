// Package ai talks to the external advisory service (Gemini). It is
// strictly best-effort: callers treat any error as "insight
// unavailable" and the ledger core never waits on it.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sari-pos-agent/internal/insights"
	"sari-pos-agent/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const advisorModel = "gemini-2.0-flash-001"

// insightSchema forces the model to answer in the BusinessInsight shape.
var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString},
		"fastMovingItems": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"restockSuggestions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"productName": {Type: genai.TypeString},
					"reason":      {Type: genai.TypeString},
				},
			},
		},
		"estimatedProfitTrend": {Type: genai.TypeString},
	},
	Required: []string{"summary", "fastMovingItems", "restockSuggestions", "estimatedProfitTrend"},
}

// GetBusinessInsights sends the aggregated store context to Gemini and
// parses the structured recommendation it returns.
func GetBusinessInsights(ctx context.Context, apiKey string, storeCtx insights.Context) (*models.BusinessInsight, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(advisorModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = insightSchema

	prompt, err := buildPrompt(storeCtx)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	raw, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	var insight models.BusinessInsight
	if err := json.Unmarshal([]byte(raw), &insight); err != nil {
		return nil, fmt.Errorf("parse advisor response: %w", err)
	}
	return &insight, nil
}

func buildPrompt(storeCtx insights.Context) (string, error) {
	lowStockNames := make([]string, 0, len(storeCtx.LowStock))
	for _, p := range storeCtx.LowStock {
		lowStockNames = append(lowStockNames, p.Name)
	}

	recentJSON, err := json.Marshal(storeCtx.RecentSales)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`As a Filipino business expert (Sari-Sari Store Consultant), analyze this store data and provide a helpful summary in Taglish (mix of English and Tagalog).

Store Data Context:
- Total Products: %d
- Low Stock Items: %s
- Recent Sales: %s
- Total Inventory Cost Value: PHP %.2f

Provide a concise summary, highlight fast-moving items, and give 2-3 specific "tito/tita" advice tips for the store owner.`,
		storeCtx.TotalProducts,
		joinOrNone(lowStockNames),
		string(recentJSON),
		storeCtx.InventoryValue,
	)
	return prompt, nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("advisor returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt), nil
		}
	}
	return "", errors.New("advisor returned no text part")
}
