package book

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"bookloader/internal/platform/dynamo"
)

const (
	attrID            = "book_id"
	attrName          = "book_name"
	attrDescription   = "book_description"
	attrPublishedDate = "published_date"
	attrCoverIDs      = "cover_ids"
	attrAuthorIDs     = "author_ids"
	attrAuthorNames   = "author_names"
)

// DynamoRepo stores books in a DynamoDB table partitioned by book_id.
type DynamoRepo struct {
	client    dynamo.API
	tableName string
}

func NewDynamoRepo(client dynamo.API, tableName string) *DynamoRepo {
	return &DynamoRepo{client: client, tableName: tableName}
}

// toItem writes every present field; nil fields are left out of the item.
func toItem(b Book) dynamo.Item {
	item := dynamo.Item{
		attrID:   dynamo.S(b.ID),
		attrName: dynamo.S(b.Name),
	}
	if b.Description != nil {
		item[attrDescription] = dynamo.S(*b.Description)
	}
	if b.PublishedDate != nil {
		item[attrPublishedDate] = dynamo.S(b.PublishedDate.Format(dateLayout))
	}
	if b.CoverIDs != nil {
		item[attrCoverIDs] = dynamo.L(b.CoverIDs)
	}
	if b.AuthorIDs != nil {
		item[attrAuthorIDs] = dynamo.L(b.AuthorIDs)
	}
	if b.AuthorNames != nil {
		item[attrAuthorNames] = dynamo.L(b.AuthorNames)
	}
	return item
}

func fromItem(item dynamo.Item) (Book, error) {
	var b Book
	var err error
	if b.ID, _, err = dynamo.String(item, attrID); err != nil {
		return Book{}, err
	}
	if b.Name, _, err = dynamo.String(item, attrName); err != nil {
		return Book{}, err
	}

	desc, ok, err := dynamo.String(item, attrDescription)
	if err != nil {
		return Book{}, err
	}
	if ok {
		b.Description = &desc
	}

	published, ok, err := dynamo.String(item, attrPublishedDate)
	if err != nil {
		return Book{}, err
	}
	if ok {
		d, err := time.Parse(dateLayout, published)
		if err != nil {
			return Book{}, fmt.Errorf("attribute %s: %w", attrPublishedDate, err)
		}
		b.PublishedDate = &d
	}

	if b.CoverIDs, err = dynamo.StringList(item, attrCoverIDs); err != nil {
		return Book{}, err
	}
	if b.AuthorIDs, err = dynamo.StringList(item, attrAuthorIDs); err != nil {
		return Book{}, err
	}
	if b.AuthorNames, err = dynamo.StringList(item, attrAuthorNames); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *DynamoRepo) Upsert(ctx context.Context, b Book) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      toItem(b),
	})
	if err != nil {
		return fmt.Errorf("put book %s: %w", b.ID, err)
	}
	return nil
}

func (r *DynamoRepo) FindByID(ctx context.Context, id string) (Book, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            dynamo.Key(attrID, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Book{}, false, fmt.Errorf("get book %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return Book{}, false, nil
	}
	b, err := fromItem(out.Item)
	if err != nil {
		return Book{}, false, fmt.Errorf("decode book %s: %w", id, err)
	}
	return b, true, nil
}
