package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"recipe-wizard/internal/domain"
)

const (
	recipePrefix = "RECIPE#"
	skMeta       = "META"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client wraps a DynamoDB table that archives generated recipes.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// recipePK returns the partition key for an archived recipe.
func recipePK(id string) string {
	return recipePrefix + id
}

// SaveRecipe writes a new archive record. Existing records are never
// overwritten.
func (c *Client) SaveRecipe(ctx context.Context, rec domain.RecipeRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("repository: SaveRecipe: ID is required")
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                recipeItem(rec),
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: SaveRecipe: %w", err)
	}
	return nil
}

func recipeItem(rec domain.RecipeRecord) map[string]types.AttributeValue {
	ingredients := make([]types.AttributeValue, 0, len(rec.Recipe.Ingredients))
	for _, ing := range rec.Recipe.Ingredients {
		ingredients = append(ingredients, &types.AttributeValueMemberS{Value: ing})
	}
	item := map[string]types.AttributeValue{
		"PK":                  &types.AttributeValueMemberS{Value: recipePK(rec.ID)},
		"SK":                  &types.AttributeValueMemberS{Value: skMeta},
		"recipeId":            &types.AttributeValueMemberS{Value: rec.ID},
		"dishName":            &types.AttributeValueMemberS{Value: rec.Recipe.DishName},
		"ingredients":         &types.AttributeValueMemberL{Value: ingredients},
		"cookingInstructions": &types.AttributeValueMemberS{Value: rec.Recipe.CookingInstructions},
		"chatModel":           &types.AttributeValueMemberS{Value: rec.ChatModel},
		"createdAt":           &types.AttributeValueMemberS{Value: rec.CreatedAt},
		"ttl":                 &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", rec.TTL)},
	}
	if rec.ImageURL != "" {
		item["imageUrl"] = &types.AttributeValueMemberS{Value: rec.ImageURL}
	}
	return item
}
