package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"readiness-workers/internal/models"
	"readiness-workers/pkg/registry"
)

const maxCatalogDocs = 500

// courseDoc is the indexed shape of a course.
type courseDoc struct {
	models.Course
	Fallback bool `json:"fallback"`
	Position int  `json:"position"`
}

type opportunityDoc struct {
	models.Opportunity
	Position int `json:"position"`
}

type searchResponse[T any] struct {
	Hits struct {
		Hits []struct {
			Source T `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ElasticsearchSource reads courses and opportunities from two indices.
type ElasticsearchSource struct {
	client           *elasticsearch.Client
	courseIndex      string
	opportunityIndex string
}

func NewElasticsearchSource(client *elasticsearch.Client, courseIndex, opportunityIndex string) *ElasticsearchSource {
	return &ElasticsearchSource{
		client:           client,
		courseIndex:      courseIndex,
		opportunityIndex: opportunityIndex,
	}
}

func (s *ElasticsearchSource) Name() string { return "elasticsearch" }

func (s *ElasticsearchSource) Load(ctx context.Context) (*registry.Document, error) {
	courses, err := search[courseDoc](ctx, s.client, s.courseIndex)
	if err != nil {
		return nil, err
	}
	opportunities, err := search[opportunityDoc](ctx, s.client, s.opportunityIndex)
	if err != nil {
		return nil, err
	}

	doc := &registry.Document{Version: "elasticsearch"}
	for _, c := range courses {
		doc.Courses = append(doc.Courses, c.Course)
		if c.Fallback {
			doc.FallbackCourses = append(doc.FallbackCourses, c.Title)
		}
	}
	for _, o := range opportunities {
		doc.Opportunities = append(doc.Opportunities, o.Opportunity)
	}
	return doc, nil
}

func search[T any](ctx context.Context, client *elasticsearch.Client, index string) ([]T, error) {
	body := `{"query":{"match_all":{}},"sort":[{"position":{"order":"asc"}}]}`
	size := maxCatalogDocs

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s failed: %s", index, res.Status())
	}

	var parsed searchResponse[T]
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode %s hits: %w", index, err)
	}

	out := make([]T, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

// Seed indexes every document of doc, keyed by course id and country.
func (s *ElasticsearchSource) Seed(ctx context.Context, doc *registry.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	fallback := make(map[string]bool, len(doc.FallbackCourses))
	for _, title := range doc.FallbackCourses {
		fallback[title] = true
	}

	for i, c := range doc.Courses {
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("course-%d", i+1)
		}
		if err := s.index(ctx, s.courseIndex, id, courseDoc{Course: c, Fallback: fallback[c.Title], Position: i}); err != nil {
			return err
		}
	}
	for i, o := range doc.Opportunities {
		if err := s.index(ctx, s.opportunityIndex, o.Country, opportunityDoc{Opportunity: o, Position: i}); err != nil {
			return err
		}
	}
	return nil
}

func (s *ElasticsearchSource) index(ctx context.Context, index, id string, doc interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", index, id, err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(payload),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index %s/%s failed: %s", index, id, res.Status())
	}
	return nil
}
