package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"recipe-wizard/internal/domain"
)

type fakeDynamo struct {
	putErr       error
	lastPutInput *dynamodb.PutItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func mustNewClient(t *testing.T, db *fakeDynamo) *Client {
	t.Helper()
	c, err := New(db, "test-table")
	require.NoError(t, err)
	return c
}

func sampleRecord() domain.RecipeRecord {
	return domain.RecipeRecord{
		ID: "abc",
		Recipe: domain.Recipe{
			DishName:            "Shakshuka",
			Ingredients:         []string{"eggs", "tomatoes", "cumin"},
			CookingInstructions: "Simmer sauce, crack eggs, cover.",
		},
		ImageURL:  "https://img.example/s.png",
		ChatModel: "gpt-4o-mini",
		CreatedAt: "2026-10-17T12:00:00Z",
		TTL:       1700000000,
	}
}

func strVal(t *testing.T, item map[string]types.AttributeValue, key string) string {
	t.Helper()
	v, ok := item[key].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %q is not a string", key)
	return v.Value
}

func TestNew_Validates(t *testing.T) {
	_, err := New(nil, "t")
	require.Error(t, err)

	_, err = New(&fakeDynamo{}, " ")
	require.Error(t, err)
}

func TestSaveRecipe_HappyPath(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)

	require.NoError(t, c.SaveRecipe(context.Background(), sampleRecord()))

	in := db.lastPutInput
	require.NotNil(t, in)
	require.Equal(t, "test-table", *in.TableName)
	require.Equal(t, "attribute_not_exists(PK)", *in.ConditionExpression)
	require.Equal(t, "RECIPE#abc", strVal(t, in.Item, "PK"))
	require.Equal(t, "META", strVal(t, in.Item, "SK"))
	require.NotEqual(t, recipePrefix, strVal(t, in.Item, "SK"))
	require.Equal(t, "Shakshuka", strVal(t, in.Item, "dishName"))
	require.Equal(t, "https://img.example/s.png", strVal(t, in.Item, "imageUrl"))

	list, ok := in.Item["ingredients"].(*types.AttributeValueMemberL)
	require.True(t, ok)
	require.Len(t, list.Value, 3)
	require.Equal(t, "tomatoes", list.Value[1].(*types.AttributeValueMemberS).Value)

	ttl, ok := in.Item["ttl"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	require.Equal(t, "1700000000", ttl.Value)
}

func TestSaveRecipe_OmitsEmptyImage(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)

	rec := sampleRecord()
	rec.ImageURL = ""
	require.NoError(t, c.SaveRecipe(context.Background(), rec))
	_, ok := db.lastPutInput.Item["imageUrl"]
	require.False(t, ok)
}

func TestSaveRecipe_Errors(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{})
	rec := sampleRecord()
	rec.ID = ""
	err := c.SaveRecipe(context.Background(), rec)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ID is required")

	c = mustNewClient(t, &fakeDynamo{putErr: errors.New("throttled")})
	err = c.SaveRecipe(context.Background(), sampleRecord())
	require.Error(t, err)
	require.Contains(t, err.Error(), "throttled")
}
