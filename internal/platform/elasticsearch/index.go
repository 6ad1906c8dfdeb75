// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// UsersIndexName is the index holding searchable user documents.
const UsersIndexName = "users"

func usersMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"user_id":    map[string]interface{}{"type": "keyword"},
				"first_name": map[string]interface{}{"type": "text"},
				"last_name":  map[string]interface{}{"type": "text"},
				"email":      map[string]interface{}{"type": "keyword"},
				"interests":  map[string]interface{}{"type": "text"},
				"created_at": map[string]interface{}{"type": "date"},
			},
		},
	}
	b, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("marshalling users mapping: %w", err)
	}
	return string(b), nil
}

// CreateUsersIndexIfNotExists creates the users index with its mapping when
// missing. A nil client is a no-op.
func CreateUsersIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	existsRes, err := esapi.IndicesExistsRequest{Index: []string{UsersIndexName}}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("checking users index: %w", err)
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode == http.StatusOK {
		log.Info("users index already exists")
		return nil
	}
	if existsRes.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status checking users index: %s", existsRes.Status())
	}

	mapping, err := usersMapping()
	if err != nil {
		return err
	}

	createRes, err := esapi.IndicesCreateRequest{
		Index: UsersIndexName,
		Body:  strings.NewReader(mapping),
	}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("creating users index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("creating users index: %s", createRes.Status())
	}
	log.Info("users index created", zap.String("index", UsersIndexName))
	return nil
}
