package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"

	defaultGridSize  = 12
	defaultWordCount = 8
)

// GeminiClient wraps the Google GenAI client for VertexAI.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a client using Application Default Credentials.
// Set GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
func NewGeminiClient(ctx context.Context, projectID, region string) (*GeminiClient, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: defaultModel,
	}, nil
}

// Close releases resources held by the client.
func (g *GeminiClient) Close() error {
	return nil
}

const generatePrompt = `Génère une grille de mots mêlés sur le thème « %s ».

Réponds au format JSON suivant :
{
  "words": ["PREMIER", "DEUXIEME", ...],
  "grid": ["ABCDEFGHIJKL", ...]
}

Règles :
- La grille fait %d lignes de %d lettres majuscules (A-Z), une chaîne par ligne, toutes de même longueur.
- Cache %d mots liés au thème dans la grille : horizontalement, verticalement ou en diagonale, dans les deux sens.
- Remplis les cases restantes avec des lettres aléatoires.
- Les mots de la liste sont en majuscules, sans accents.
- Réponds UNIQUEMENT avec le JSON, sans commentaire ni markdown.`

// GeneratePuzzle asks Gemini Flash for a themed word search puzzle and
// validates it before returning. Words the model claims to have hidden
// but that the solver cannot find are dropped rather than failing the
// whole grid.
func (g *GeminiClient) GeneratePuzzle(ctx context.Context, theme string, size, count int) (*Puzzle, error) {
	prompt := fmt.Sprintf(generatePrompt, theme, size, size, count)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw struct {
		Words []string `json:"words"`
		Grid  []string `json:"grid"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse puzzle JSON: %w\nraw response: %s", err, text)
	}

	puzzle, err := NewPuzzle(theme, raw.Words, raw.Grid)
	if err != nil {
		return nil, fmt.Errorf("invalid generated puzzle: %w", err)
	}

	// Keep only the words that are actually findable in the grid.
	result := Solve(puzzle.Words, puzzle.Rows)
	kept := make([]string, 0, len(puzzle.Words))
	for _, word := range puzzle.Words {
		if len(result[word]) > 0 {
			kept = append(kept, word)
		} else {
			log.Printf("generated word %q not found in grid, dropping it", word)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("generated puzzle contains none of its %d words", len(puzzle.Words))
	}
	puzzle.Words = kept

	return puzzle, nil
}
