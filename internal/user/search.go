// File: internal/user/search.go
package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	platformes "plusone_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSearchLimit caps how many accounts an interest search may return.
const maxSearchLimit = 50

// SearchService provides user discovery: interest search backed by
// Elasticsearch and a recent-signups listing backed by the repository.
type SearchService struct {
	repo     Repository
	esClient *platformes.ESClientWrapper
	logger   *zap.Logger
}

// NewSearchService creates the discovery service. esClient may be nil, in
// which case interest search returns empty results.
func NewSearchService(repo Repository, esClient *platformes.ESClientWrapper, logger *zap.Logger) *SearchService {
	return &SearchService{repo: repo, esClient: esClient, logger: logger}
}

type userDocument struct {
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexUser upserts the account's search document. Indexing is best-effort:
// failures are logged and never surfaced to the triggering operation.
func (s *SearchService) IndexUser(ctx context.Context, u *User) {
	if s.esClient == nil {
		return
	}
	doc := userDocument{
		UserID:    u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Interests: u.Profile.Interests,
		CreatedAt: u.CreatedAt,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		s.logger.Warn("Failed to marshal user search document", zap.Error(err), zap.String("userID", u.ID.String()))
		return
	}

	res, err := esapi.IndexRequest{
		Index:      platformes.UsersIndexName,
		DocumentID: u.ID.String(),
		Body:       bytes.NewReader(body),
	}.Do(ctx, s.esClient.Client)
	if err != nil {
		s.logger.Warn("Failed to index user document", zap.Error(err), zap.String("userID", u.ID.String()))
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logger.Warn("Elasticsearch rejected user document",
			zap.String("status", res.Status()), zap.String("userID", u.ID.String()))
	}
}

// SearchByInterest finds accounts whose interests match the query,
// case-insensitively. A missing or failing cluster degrades to an empty
// result rather than an error.
func (s *SearchService) SearchByInterest(ctx context.Context, query string, limit int) ([]UserResponse, error) {
	if s.esClient == nil {
		return []UserResponse{}, nil
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	esQuery := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"interests": map[string]interface{}{
					"query":     query,
					"operator":  "and",
					"fuzziness": "AUTO",
				},
			},
		},
	}
	body, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("marshalling search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(platformes.UsersIndexName),
		s.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		s.logger.Warn("Interest search failed, returning empty results", zap.Error(err))
		return []UserResponse{}, nil
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logger.Warn("Interest search returned an error, returning empty results", zap.String("status", res.Status()))
		return []UserResponse{}, nil
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		s.logger.Warn("Failed to decode search response, returning empty results", zap.Error(err))
		return []UserResponse{}, nil
	}

	results := make([]UserResponse, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.Source.UserID)
		if err != nil {
			continue
		}
		u, err := s.repo.FindByID(ctx, id)
		if err != nil {
			// Stale index entry; skip it.
			continue
		}
		results = append(results, ToUserResponse(u))
	}
	return results, nil
}

// RecentUsers returns the newest signups excluding the caller.
func (s *SearchService) RecentUsers(ctx context.Context, excludeID uuid.UUID, limit int) ([]UserResponse, error) {
	if limit <= 0 {
		limit = 3
	}
	users, err := s.repo.FindRecent(ctx, excludeID, limit)
	if err != nil {
		return nil, err
	}
	results := make([]UserResponse, 0, len(users))
	for i := range users {
		results = append(results, ToUserResponse(&users[i]))
	}
	return results, nil
}
