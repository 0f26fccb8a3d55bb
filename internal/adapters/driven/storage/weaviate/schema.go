package weaviate

import (
	"context"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
)

// SchemaClient is the subset of Weaviate schema operations the store needs.
type SchemaClient interface {
	ClassExists(ctx context.Context, className string) (bool, error)
	CreateClass(ctx context.Context, class *models.Class) error
	DeleteClass(ctx context.Context, className string) error
}

// clientSchema adapts a weaviate.Client to SchemaClient.
type clientSchema struct {
	client *weaviate.Client
}

func (a clientSchema) ClassExists(ctx context.Context, className string) (bool, error) {
	return a.client.Schema().ClassExistenceChecker().WithClassName(className).Do(ctx)
}

func (a clientSchema) CreateClass(ctx context.Context, class *models.Class) error {
	return a.client.Schema().ClassCreator().WithClass(class).Do(ctx)
}

func (a clientSchema) DeleteClass(ctx context.Context, className string) error {
	return a.client.Schema().ClassDeleter().WithClassName(className).Do(ctx)
}

// chunkClass describes the class holding profile chunks. Vectors are
// supplied by the caller, so no vectorizer module is configured.
func chunkClass(name string) *models.Class {
	return &models.Class{
		Class:       name,
		Description: "A chunk of a profile document",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{Name: propChunkID, DataType: []string{"text"}},
			{Name: propDocumentID, DataType: []string{"text"}},
			{Name: propSourceName, DataType: []string{"text"}},
			{Name: propSourceURL, DataType: []string{"text"}},
			{Name: propContent, DataType: []string{"text"}},
			{Name: propPosition, DataType: []string{"int"}},
		},
	}
}

// resetClass drops the class if present and creates it empty.
func resetClass(ctx context.Context, client SchemaClient, name string) error {
	exists, err := client.ClassExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		if err := client.DeleteClass(ctx, name); err != nil {
			return err
		}
	}
	return client.CreateClass(ctx, chunkClass(name))
}

// ensureClass creates the class only if it does not exist.
func ensureClass(ctx context.Context, client SchemaClient, name string) error {
	exists, err := client.ClassExists(ctx, name)
	if err != nil || exists {
		return err
	}
	return client.CreateClass(ctx, chunkClass(name))
}
