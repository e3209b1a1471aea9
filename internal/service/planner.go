package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/atinyakov/tripwise/internal/models"
)

const (
	// tagWeight is added for every interest found in a spot's tags.
	tagWeight = 5.0
	// descriptionWeight is added for every interest found in a spot's
	// description. It is the smallest positive increment.
	descriptionWeight = 2.0
	// noiseAmplitude bounds the random addend; it must stay below
	// descriptionWeight so noise never outranks a real match.
	noiseAmplitude = 2.0
	// maxRecommendations caps the ranking.
	maxRecommendations = 5
)

// PlannerRepository defines the persistence operations
// required by the planner service.
type PlannerRepository interface {
	Spots(ctx context.Context) ([]models.Spot, error)
}

// PlannerService ranks destinations for a trip request and answers simple
// travel questions. Both are keyword heuristics, not a model.
type PlannerService struct {
	repo PlannerRepository
	opts Options
}

// NewPlannerService constructs a PlannerService using the provided repository.
func NewPlannerService(repo PlannerRepository, opts Options) *PlannerService {
	return &PlannerService{repo: repo, opts: opts.withDefaults()}
}

// Recommend returns up to five destinations ranked by how well they match
// req.Interests, limited to req.Region when set.
//
// Each interest scores tagWeight when it equals one of the spot's tags and
// descriptionWeight when it occurs in the description, both compared
// case-insensitively. A random addend in [0, noiseAmplitude) varies repeated
// runs. When interests are given, spots matching none of them are left out;
// with no interests every spot in the region is ranked by the noise alone.
func (s *PlannerService) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error) {
	if err := wait(ctx, s.opts.Delays.Recommendations); err != nil {
		return nil, err
	}
	if req.Region != "" && !req.Region.Valid() {
		return nil, fmt.Errorf("unknown region %q: %w", req.Region, ErrInvalidInput)
	}

	spots, err := s.repo.Spots(ctx)
	if err != nil {
		return nil, err
	}

	interests := normalizeInterests(req.Interests)
	ranked := make([]models.Recommendation, 0, len(spots))
	for _, spot := range spots {
		if req.Region != "" && spot.Region != req.Region {
			continue
		}
		score := matchScore(spot, interests)
		if len(interests) > 0 && score == 0 {
			continue
		}
		ranked = append(ranked, models.Recommendation{Spot: spot, Score: score + s.noise()})
	}

	slices.SortStableFunc(ranked, func(a, b models.Recommendation) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked, nil
}

// noise returns a perturbation in [0, noiseAmplitude), clamping whatever the
// configured source produces.
func (s *PlannerService) noise() float64 {
	n := s.opts.Noise()
	switch {
	case n < 0 || math.IsNaN(n):
		n = 0
	case n >= 1:
		n = math.Nextafter(1, 0)
	}
	return n * noiseAmplitude
}

func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		i = strings.ToLower(strings.TrimSpace(i))
		if i != "" {
			out = append(out, i)
		}
	}
	return out
}

func matchScore(spot models.Spot, interests []string) float64 {
	description := strings.ToLower(spot.Description)
	var score float64
	for _, interest := range interests {
		for _, tag := range spot.Tags {
			if strings.EqualFold(tag, interest) {
				score += tagWeight
				break
			}
		}
		if strings.Contains(description, interest) {
			score += descriptionWeight
		}
	}
	return score
}

type chatTopic struct {
	triggers []string
	reply    string
}

var chatTopics = []chatTopic{
	{
		triggers: []string{"price", "cost"},
		reply: "Prices vary by season. Hotels range from PKR 5,000 to 45,000. Car rentals start at PKR 4,000/day. " +
			"Check the 'Hotels' or 'Transport' tab for current rates.",
	},
	{
		triggers: []string{"weather", "best time"},
		reply:    "For Northern Areas, May to September is best. For Sindh/Punjab, October to March is ideal.",
	},
	{
		triggers: []string{"food"},
		reply:    "Don't miss Chapli Kabab in Peshawar, Biryani in Karachi, and Yak meat in Hunza!",
	},
}

const chatFallback = "I recommend exploring the 'Explore' tab for specific spots. " +
	"Pakistan has amazing mountains, deserts, and beaches!"

// Chat answers a travel question. Topic keywords take precedence, then a
// destination named in the query, then a generic suggestion. Nothing is
// remembered between calls.
func (s *PlannerService) Chat(ctx context.Context, query string) (string, error) {
	if err := wait(ctx, s.opts.Delays.Chat); err != nil {
		return "", err
	}
	q := strings.ToLower(query)

	for _, topic := range chatTopics {
		for _, trigger := range topic.triggers {
			if strings.Contains(q, trigger) {
				return topic.reply, nil
			}
		}
	}

	spots, err := s.repo.Spots(ctx)
	if err != nil {
		return "", err
	}
	for _, spot := range spots {
		if spot.Name != "" && strings.Contains(q, strings.ToLower(spot.Name)) {
			return fmt.Sprintf("%s is a great choice! It's known for %s. %s",
				spot.Name, strings.Join(spot.Tags, ", "), spot.Description), nil
		}
	}
	return chatFallback, nil
}
