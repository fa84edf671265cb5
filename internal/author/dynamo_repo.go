package author

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"bookloader/internal/platform/dynamo"
)

const (
	attrID           = "author_id"
	attrName         = "author_name"
	attrPersonalName = "personal_name"
)

// DynamoRepo stores authors in a DynamoDB table partitioned by author_id.
type DynamoRepo struct {
	client    dynamo.API
	tableName string
}

func NewDynamoRepo(client dynamo.API, tableName string) *DynamoRepo {
	return &DynamoRepo{client: client, tableName: tableName}
}

func toItem(a Author) dynamo.Item {
	return dynamo.Item{
		attrID:           dynamo.S(a.ID),
		attrName:         dynamo.S(a.Name),
		attrPersonalName: dynamo.S(a.PersonalName),
	}
}

func fromItem(item dynamo.Item) (Author, error) {
	var a Author
	var err error
	if a.ID, _, err = dynamo.String(item, attrID); err != nil {
		return Author{}, err
	}
	if a.Name, _, err = dynamo.String(item, attrName); err != nil {
		return Author{}, err
	}
	if a.PersonalName, _, err = dynamo.String(item, attrPersonalName); err != nil {
		return Author{}, err
	}
	return a, nil
}

func (r *DynamoRepo) Upsert(ctx context.Context, a Author) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      toItem(a),
	})
	if err != nil {
		return fmt.Errorf("put author %s: %w", a.ID, err)
	}
	return nil
}

// FindByID uses a strongly consistent read so authors written earlier in the
// same run are visible.
func (r *DynamoRepo) FindByID(ctx context.Context, id string) (Author, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            dynamo.Key(attrID, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Author{}, false, fmt.Errorf("get author %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return Author{}, false, nil
	}
	a, err := fromItem(out.Item)
	if err != nil {
		return Author{}, false, fmt.Errorf("decode author %s: %w", id, err)
	}
	return a, true, nil
}
