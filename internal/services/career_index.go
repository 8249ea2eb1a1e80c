package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/models"
)

const (
	careerDocType       = "career"
	embeddingVectorSize = 768
)

// CareerHit is a catalog career returned by a similarity search.
type CareerHit struct {
	Title       string
	Score       float32
	Description string
}

// CareerIndex stores one embedding per catalog career in Qdrant.
type CareerIndex interface {
	InitCollection(ctx context.Context) error
	IndexCareer(ctx context.Context, position int, listing models.CareerListing, embedding []float32) error
	SearchCareers(ctx context.Context, embedding []float32, limit int) ([]CareerHit, error)
}

type qdrantCareerIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            logrus.FieldLogger
}

func NewCareerIndex(urlStr, apiKey, collectionName string, log logrus.FieldLogger) (CareerIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantCareerIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embeddingVectorSize,
		log:            log,
	}, nil
}

// InitCollection implements CareerIndex.
func (q *qdrantCareerIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		q.log.WithField("collection", q.collectionName).Debug("qdrant collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.WithField("collection", q.collectionName).Info("qdrant collection created")
	return nil
}

// IndexCareer implements CareerIndex. Point ids follow catalog position so
// re-indexing the same catalog overwrites instead of duplicating.
func (q *qdrantCareerIndex) IndexCareer(ctx context.Context, position int, listing models.CareerListing, embedding []float32) error {
	if position < 0 {
		return fmt.Errorf("invalid catalog position %d", position)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(position + 1)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_type":    careerDocType,
			"title":       listing.Title,
			"description": listing.Description,
			"skills":      strings.Join(listing.RequiredSkills, ", "),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert career %q: %w", listing.Title, err)
	}
	return nil
}

// SearchCareers implements CareerIndex.
func (q *qdrantCareerIndex) SearchCareers(ctx context.Context, embedding []float32, limit int) ([]CareerHit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_type", careerDocType),
			},
		},
		Limit:       qdrant.PtrOf(uint64(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]CareerHit, 0, len(points))
	for _, point := range points {
		hit := CareerHit{
			Title:       payloadString(point.Payload, "title"),
			Description: payloadString(point.Payload, "description"),
			Score:       point.Score,
		}
		if hit.Title == "" {
			continue
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}
